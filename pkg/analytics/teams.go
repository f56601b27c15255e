package analytics

import (
	"sort"

	"github.com/chenBenjamin97/football-analyzer/pkg/tracking"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

//SplitByBrightness splits the players of one frame in two teams by the brightness of their jersey: below the
//median is the dark team, the rest the light team. brightness maps player ID -> mean gray level.
func SplitByBrightness(brightness map[int]float64) map[int]int {
	if len(brightness) == 0 {
		return nil
	}

	values := make([]float64, 0, len(brightness))
	for _, v := range brightness {
		values = append(values, v)
	}
	sort.Float64s(values)
	median := values[len(values)/2]

	teams := make(map[int]int, len(brightness))
	for id, v := range brightness {
		if v < median {
			teams[id] = utils.DarkTeamID
		} else {
			teams[id] = utils.LightTeamID
		}
	}

	return teams
}

//TeamVotes counts, per player, how many frames put him in each team
type TeamVotes struct {
	dark  map[int]int
	light map[int]int
}

//NewTeamVotes returns an empty TeamVotes
func NewTeamVotes() *TeamVotes {
	return &TeamVotes{dark: make(map[int]int), light: make(map[int]int)}
}

//Add records one frame's split
func (v *TeamVotes) Add(teams map[int]int) {
	for id, team := range teams {
		switch team {
		case utils.DarkTeamID:
			v.dark[id]++
		case utils.LightTeamID:
			v.light[id]++
		}
	}
}

//Team returns the team a player was put in most often, utils.NoTeamID when it never got a vote. Ties go to the
//light team.
func (v *TeamVotes) Team(id int) int {
	d, l := v.dark[id], v.light[id]
	if d == 0 && l == 0 {
		return utils.NoTeamID
	}

	if d > l {
		return utils.DarkTeamID
	}
	return utils.LightTeamID
}

//Apply writes Team on every player record and, when colors holds the team, TeamColor
func (v *TeamVotes) Apply(store *tracking.TrackStore, colors map[int][3]uint8) {
	for _, frame := range store.Players {
		for id, rec := range frame {
			rec.Team = v.Team(id)
			if c, ok := colors[rec.Team]; ok {
				rec.TeamColor = c
			}
		}
	}
}
