package logic

import (
	"math"
	"sort"
	"strconv"

	"github.com/ekoly/ufc-fight-prediction/internal/models"
)

// weightClasses is the fixed enumeration offered to callers. Open Weight is
// the catch-all with an empty internal value.
var weightClasses = []models.WeightClass{
	{Label: "Heavyweight", Value: "Heavyweight"},
	{Label: "Light Heavyweight (205 lbs.)", Value: "Light Heavyweight"},
	{Label: "Middleweight (185 lbs.)", Value: "Middleweight"},
	{Label: "Welterweight (170 lbs.)", Value: "Welterweight"},
	{Label: "Lightweight (155 lbs.)", Value: "Lightweight"},
	{Label: "Featherweight (145 lbs.)", Value: "Featherweight"},
	{Label: "Bantamweight (135 lbs.)", Value: "Bantamweight"},
	{Label: "Flyweight (125 lbs.)", Value: "Flyweight"},
	{Label: "Women's Featherweight (145 lbs.)", Value: "Women's Featherweight"},
	{Label: "Women's Bantamweight (135 lbs.)", Value: "Women's Bantamweight"},
	{Label: "Women's Flyweight (125 lbs.)", Value: "Women's Flyweight"},
	{Label: "Women's Strawweight (115 lbs.)", Value: "Women's Strawweight"},
	{Label: "Open Weight", Value: ""},
}

const noValue = "-"

type rosterService struct {
	fighters         []string
	weightToFighters map[string][]string
	nicknames        map[string]string
	reach            map[string]string
	height           map[string]string
	wins             map[string]string
	losses           map[string]string
}

// NewRosterService builds the immutable lookup maps from the loaded
// snapshots and nickname table. Weight-class membership is derived here,
// once, from each fighter's latest record.
func NewRosterService(snapshots []models.FighterSnapshot, nicknames map[string]string) RosterService {
	s := &rosterService{
		weightToFighters: make(map[string][]string),
		nicknames:        nicknames,
		reach:            make(map[string]string, len(snapshots)),
		height:           make(map[string]string, len(snapshots)),
		wins:             make(map[string]string, len(snapshots)),
		losses:           make(map[string]string, len(snapshots)),
	}

	for _, snap := range snapshots {
		s.fighters = append(s.fighters, snap.Name)
		s.weightToFighters[snap.WeightClass] = append(s.weightToFighters[snap.WeightClass], snap.Name)
		s.reach[snap.Name] = formatCms(snap.Numeric["Reach_cms"])
		s.height[snap.Name] = formatCms(snap.Numeric["Height_cms"])
		s.wins[snap.Name] = formatCount(snap.Numeric["wins"])
		s.losses[snap.Name] = formatCount(snap.Numeric["losses"])
	}

	sort.Strings(s.fighters)
	for _, names := range s.weightToFighters {
		sort.Strings(names)
	}

	return s
}

func (s *rosterService) AllFighters(weightClass string) []string {
	src := s.fighters
	if weightClass != "" {
		src = s.weightToFighters[weightClass]
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func (s *rosterService) WeightClasses() []models.WeightClass {
	out := make([]models.WeightClass, len(weightClasses))
	copy(out, weightClasses)
	return out
}

func (s *rosterService) Nickname(fighter string) string {
	return s.nicknames[fighter]
}

func (s *rosterService) Reach(fighter string) string {
	return lookupOrDash(s.reach, fighter)
}

func (s *rosterService) Height(fighter string) string {
	return lookupOrDash(s.height, fighter)
}

func (s *rosterService) Wins(fighter string) string {
	return lookupOrDash(s.wins, fighter)
}

func (s *rosterService) Losses(fighter string) string {
	return lookupOrDash(s.losses, fighter)
}

func (s *rosterService) Card(fighter string) models.FighterCard {
	return models.FighterCard{
		Name:     fighter,
		Nickname: s.Nickname(fighter),
		Reach:    s.Reach(fighter),
		Height:   s.Height(fighter),
		Wins:     s.Wins(fighter),
		Losses:   s.Losses(fighter),
	}
}

func lookupOrDash(m map[string]string, key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return noValue
}

func formatCms(v float64) string {
	if math.IsNaN(v) {
		return noValue
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + " cms"
}

func formatCount(v float64) string {
	if math.IsNaN(v) {
		return noValue
	}
	return strconv.Itoa(int(v))
}
