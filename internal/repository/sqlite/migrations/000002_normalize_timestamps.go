package migrations

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"fichaje/internal/timeutil"
)

func init() {
	RegisterGoMigration(2, upNormalizeTimestamps)
}

// upNormalizeTimestamps rewrites naive ISO timestamps (no zone offset, as
// imported from the first version of the bot) into RFC3339 with offset.
// Values that cannot be parsed are left untouched.
func upNormalizeTimestamps(tx *sql.Tx, loc *time.Location) error {
	type row struct {
		userID   string
		day      string
		document string
	}
	var rows []row

	result, err := tx.Query("SELECT user_id, day, document FROM day_records")
	if err != nil {
		return fmt.Errorf("failed to query day records: %w", err)
	}
	for result.Next() {
		var r row
		if err := result.Scan(&r.userID, &r.day, &r.document); err != nil {
			result.Close()
			return fmt.Errorf("failed to scan day record: %w", err)
		}
		rows = append(rows, r)
	}
	if err := result.Err(); err != nil {
		result.Close()
		return fmt.Errorf("error iterating day records: %w", err)
	}
	result.Close()

	for _, r := range rows {
		var doc map[string]any
		if err := json.Unmarshal([]byte(r.document), &doc); err != nil {
			continue
		}
		if !normalizeDocument(doc, loc) {
			continue
		}
		bs, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode day record %s/%s: %w", r.userID, r.day, err)
		}
		if _, err := tx.Exec("UPDATE day_records SET document = ? WHERE user_id = ? AND day = ?", string(bs), r.userID, r.day); err != nil {
			return fmt.Errorf("failed to update day record %s/%s: %w", r.userID, r.day, err)
		}
	}
	return nil
}

// normalizeDocument reports whether any timestamp changed
func normalizeDocument(doc map[string]any, loc *time.Location) bool {
	changed := normalizeField(doc, "start", loc)
	changed = normalizeField(doc, "end", loc) || changed

	pauses, _ := doc["pauses"].([]any)
	for _, p := range pauses {
		pause, ok := p.(map[string]any)
		if !ok {
			continue
		}
		changed = normalizeField(pause, "start", loc) || changed
		changed = normalizeField(pause, "end", loc) || changed
	}
	return changed
}

func normalizeField(m map[string]any, field string, loc *time.Location) bool {
	s, ok := m[field].(string)
	if !ok {
		return false
	}
	if _, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return false
	}
	t, err := timeutil.ParseTimestamp(s, loc)
	if err != nil {
		return false
	}
	m[field] = timeutil.FormatTimestamp(t)
	return true
}
