package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/era/internal/domain"
)

func sessionState(s *domain.SessionRecord) string {
	if s.IsComplete() {
		return StyleGreen.Render("✔ Complete")
	}
	return StyleYellow.Render("○ Open")
}

// FormatSessionList renders recent sessions newest first.
func FormatSessionList(sessions []*domain.SessionRecord, now time.Time) string {
	if len(sessions) == 0 {
		return Dim("No sessions yet. Run `era breathe` to start one.") + "\n"
	}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			TruncID(s.ID),
			HumanTimestampFrom(s.StartedAt.In(now.Location()), now),
			FormatSeconds(s.Duration()),
			sessionState(s),
		})
	}
	return RenderAlignedTable(
		[]string{"ID", "STARTED", "LENGTH", "STATE"},
		rows,
		[]Align{AlignLeft, AlignLeft, AlignRight, AlignLeft},
	)
}

func FormatSessionDetail(s *domain.SessionRecord, loc *time.Location) string {
	ended := Dim("--")
	if s.EndedAt != nil {
		ended = s.EndedAt.In(loc).Format("2006-01-02 15:04:05")
	}
	bucket := domain.CategorizeHour(s.StartedAt.In(loc).Hour())

	var b strings.Builder
	b.WriteString(KeyValue([][2]string{
		{"ID", s.ID},
		{"Started", s.StartedAt.In(loc).Format("2006-01-02 15:04:05")},
		{"Ended", ended},
		{"Length", FormatSeconds(s.Duration())},
		{"Time of day", BucketBadge(&bucket)},
		{"State", sessionState(s)},
	}))
	return RenderBox("Session", b.String())
}
