package client

import "strconv"

// columnCandidates maps each canonical column name to the source column
// names the stats API has used for it, in preference order. The API
// mixes camelCase (v3 endpoints) and SCREAMING_SNAKE (v2 endpoints) for
// the same logical field, so every ingested payload is normalized
// through this table once, first match wins.
var columnCandidates = map[string][]string{
	// Identity
	"game_id":   {"gameId", "GAME_ID"},
	"team_id":   {"teamId", "TEAM_ID", "offensiveTeamId"},
	"player_id": {"personId", "PLAYER_ID", "person_id", "PERSON_ID"},
	"minutes":   {"minutes", "MIN"},

	// Traditional stats
	"pts":        {"points", "PTS"},
	"reb":        {"reboundsTotal", "REB"},
	"ast":        {"assists", "AST"},
	"stl":        {"steals", "STL"},
	"blk":        {"blocks", "BLK"},
	"tov":        {"turnovers", "TOV"},
	"pf":         {"foulsPersonal", "PF"},
	"plus_minus": {"plusMinusPoints", "PLUS_MINUS"},
	"fgm":        {"fieldGoalsMade", "FGM"},
	"fga":        {"fieldGoalsAttempted", "FGA"},
	"fg_pct":     {"fieldGoalsPercentage", "FG_PCT"},
	"fg3m":       {"threePointersMade", "FG3M"},
	"fg3a":       {"threePointersAttempted", "FG3A"},
	"fg3_pct":    {"threePointersPercentage", "FG3_PCT"},
	"ftm":        {"freeThrowsMade", "FTM"},
	"fta":        {"freeThrowsAttempted", "FTA"},
	"ft_pct":     {"freeThrowsPercentage", "FT_PCT"},

	// Advanced
	"off_rating": {"offensiveRating", "OFF_RATING"},
	"def_rating": {"defensiveRating", "DEF_RATING"},
	"net_rating": {"netRating", "NET_RATING"},
	"usg_pct":    {"usagePercentage", "USG_PCT"},
	"pace":       {"pace", "PACE"},
	"pie":        {"PIE"},

	// Matchups
	"off_player_id":   {"personIdOff", "offensivePlayerId", "OFF_PLAYER_ID"},
	"def_player_id":   {"personIdDef", "defensivePlayerId", "DEF_PLAYER_ID"},
	"matchup_minutes": {"matchupMinutes", "MATCHUP_MIN"},
	"points_allowed":  {"playerPoints", "playerPts", "PLAYER_PTS"},
	"matchup_ast":     {"matchupAssists", "MATCHUP_AST"},
	"matchup_tov":     {"matchupTurnovers", "MATCHUP_TOV"},
	"matchup_blk":     {"matchupBlocks", "MATCHUP_BLK"},

	// Hustle
	"screen_assists":        {"SCREEN_ASSISTS"},
	"deflections":           {"DEFLECTIONS"},
	"loose_balls_recovered": {"LOOSE_BALLS_RECOVERED"},
	"charges_drawn":         {"CHARGES_DRAWN"},
	"contested_shots":       {"CONTESTED_SHOTS"},
	"box_outs":              {"BOX_OUTS"},

	// Tracking
	"dist_miles":    {"DIST_MILES"},
	"avg_speed":     {"AVG_SPEED"},
	"avg_speed_off": {"AVG_SPEED_OFF"},
	"avg_speed_def": {"AVG_SPEED_DEF"},

	// Rotations
	"in_time_real":  {"IN_TIME_REAL"},
	"out_time_real": {"OUT_TIME_REAL"},
	"pt_diff":       {"PT_DIFF"},

	// Play-by-play
	"event_num":   {"actionNumber", "EVENTNUM"},
	"period":      {"period", "PERIOD"},
	"clock":       {"clock", "PCTIMESTRING"},
	"action_type": {"actionType", "EVENTMSGTYPE"},
	"sub_type":    {"subType", "EVENTMSGACTIONTYPE"},
	"description": {"description", "HOMEDESCRIPTION", "VISITORDESCRIPTION"},
	"shot_result": {"shotResult"},
	"loc_x":       {"xLegacy", "LOC_X"},
	"loc_y":       {"yLegacy", "LOC_Y"},
	"score_home":  {"scoreHome", "SCORE_HOME"},
	"score_away":  {"scoreAway", "SCORE_AWAY"},

	// Schedule
	"season_id":  {"SEASON_ID"},
	"team_abbr":  {"TEAM_ABBREVIATION"},
	"team_name":  {"TEAM_NAME"},
	"game_date":  {"GAME_DATE"},
	"matchup":    {"MATCHUP"},
	"wl":         {"WL"},
	"player_name": {"firstName", "PLAYER_NAME"},
	"family_name": {"familyName"},
}

// ResolveColumns maps canonical column names to indexes into headers.
// For each canonical name the first candidate present in headers wins;
// canonical names with no matching header are absent from the result.
func ResolveColumns(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}

	resolved := make(map[string]int)
	for canonical, candidates := range columnCandidates {
		for _, c := range candidates {
			if i, ok := index[c]; ok {
				resolved[canonical] = i
				break
			}
		}
	}
	return resolved
}

// Row is one normalized record keyed by canonical column name.
type Row map[string]any

// NormalizeRows converts a headers + rowSet table into canonical-keyed
// rows. Cells for unmapped headers are dropped.
func NormalizeRows(headers []string, rowSet [][]any) []Row {
	resolved := ResolveColumns(headers)
	rows := make([]Row, 0, len(rowSet))
	for _, raw := range rowSet {
		row := make(Row, len(resolved))
		for canonical, i := range resolved {
			if i < len(raw) {
				row[canonical] = raw[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Str returns the cell as a string, or "" when missing or null.
func (r Row) Str(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// Int returns the cell as an int, or 0 when missing, null, or
// non-numeric.
func (r Row) Int(key string) int {
	switch v := r[key].(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// Float returns the cell as a float64, or 0 when missing, null, or
// non-numeric.
func (r Row) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// IntPtr returns the cell as *int, or nil when missing, null, or
// non-numeric. Score cells arrive as strings on some endpoints and as
// numbers on others.
func (r Row) IntPtr(key string) *int {
	switch v := r[key].(type) {
	case float64:
		n := int(v)
		return &n
	case string:
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil
		}
		return &n
	}
	return nil
}

// FloatPtr returns the cell as *float64, or nil when missing or null.
func (r Row) FloatPtr(key string) *float64 {
	switch v := r[key].(type) {
	case float64:
		return &v
	case string:
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		return &f
	}
	return nil
}

// Has reports whether the cell is present and non-null.
func (r Row) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}
