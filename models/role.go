package models

type Role string

const (
	RoleAdmin  Role = "admin"
	RolePlayer Role = "player"
)
