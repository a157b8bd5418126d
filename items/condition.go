package items

import "fmt"

// GrandprixCondition is the lap/rank condition selecting a grand prix record.
type GrandprixCondition uint8

const (
	Lap1First GrandprixCondition = iota
	Lap2To5SecondToFourth
	Lap2To5FifthToEighth
)

var gpCondNames = [LapRankCount]string{"lap1-1st", "lap2to5-2nd-4th", "lap2to5-5th-8th"}

func (c GrandprixCondition) String() string {
	if int(c) < len(gpCondNames) {
		return gpCondNames[c]
	}
	return fmt.Sprintf("GrandprixCondition(%d)", uint8(c))
}

func (c GrandprixCondition) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *GrandprixCondition) UnmarshalText(text []byte) error {
	for i, name := range gpCondNames {
		if name == string(text) {
			*c = GrandprixCondition(i)
			return nil
		}
	}
	return fmt.Errorf("unknown grand prix condition %q", text)
}

// MatchRaceCondition is the lap/rank condition selecting a match race record.
type MatchRaceCondition uint8

const (
	MatchLap1 MatchRaceCondition = iota
	MatchLap2To5First
	MatchLap2To5Second
)

var matchCondNames = [LapRankCount]string{"lap1", "lap2to5-1st", "lap2to5-2nd"}

func (c MatchRaceCondition) String() string {
	if int(c) < len(matchCondNames) {
		return matchCondNames[c]
	}
	return fmt.Sprintf("MatchRaceCondition(%d)", uint8(c))
}

func (c MatchRaceCondition) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *MatchRaceCondition) UnmarshalText(text []byte) error {
	for i, name := range matchCondNames {
		if name == string(text) {
			*c = MatchRaceCondition(i)
			return nil
		}
	}
	return fmt.Errorf("unknown match race condition %q", text)
}

// ParseCondition parses the name of a lap/rank condition of mode.
func ParseCondition(mode Mode, s string) (int, error) {
	switch mode {
	case GrandPrix:
		var c GrandprixCondition
		err := c.UnmarshalText([]byte(s))
		return int(c), err
	case MatchRace:
		var c MatchRaceCondition
		err := c.UnmarshalText([]byte(s))
		return int(c), err
	}
	if s != "" {
		return 0, fmt.Errorf("battle mode has no condition, got %q", s)
	}
	return 0, nil
}

func conditionName(mode Mode, cond int) string {
	switch mode {
	case GrandPrix:
		return GrandprixCondition(cond).String()
	case MatchRace:
		return MatchRaceCondition(cond).String()
	}
	return ""
}
