package ranking

import (
	"sort"

	"github.com/Dosada05/community-tournaments/models"
)

type SeasonChampion struct {
	SeasonID string        `json:"season_id"`
	Numero   int           `json:"numero"`
	Champion PlayerRanking `json:"champion"`
}

// CurrentSeason returns the season with the highest numero, or nil.
func CurrentSeason(seasons []models.Season) *models.Season {
	var current *models.Season
	for i := range seasons {
		if current == nil || seasons[i].Numero > current.Numero {
			current = &seasons[i]
		}
	}
	return current
}

// SeasonRanking ranks players over the tournaments of one season.
func SeasonRanking(season *models.Season, tournaments []models.Tournament, players []models.Player) []PlayerRanking {
	return Compute(tournaments, players, Scope{Season: season})
}

// SeasonChampions lists the top-ranked player of every closed season, ordered
// by numero. The current season and the numero 0 season are not listed, nor
// are seasons without any ranked player.
func SeasonChampions(seasons []models.Season, tournaments []models.Tournament, players []models.Player) []SeasonChampion {
	current := CurrentSeason(seasons)
	champions := make([]SeasonChampion, 0, len(seasons))
	for i := range seasons {
		s := &seasons[i]
		if s.Numero == 0 || (current != nil && s.Numero == current.Numero) {
			continue
		}
		ranking := SeasonRanking(s, tournaments, players)
		if len(ranking) == 0 {
			continue
		}
		champions = append(champions, SeasonChampion{SeasonID: s.ID, Numero: s.Numero, Champion: ranking[0]})
	}
	sort.SliceStable(champions, func(i, j int) bool {
		return champions[i].Numero < champions[j].Numero
	})
	return champions
}

// ChampionshipCounts returns how many closed seasons each player won.
func ChampionshipCounts(champions []SeasonChampion) map[string]int {
	counts := make(map[string]int, len(champions))
	for _, c := range champions {
		counts[c.Champion.Player.ID]++
	}
	return counts
}
