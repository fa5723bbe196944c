package notice

import "time"

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Notice - карточка уведомления в том виде, в каком её отдаёт backend
type Notice struct {
	ID                     int64      `json:"id"`
	Code                   string     `json:"code"`
	Title                  string     `json:"title"`
	Summary                string     `json:"summary"`
	DetailedExplanation    string     `json:"detailed_explanation"`
	WhyReceived            string     `json:"why_received"`
	CommonMistakes         string     `json:"common_mistakes"`
	SourceSection          string     `json:"source_section"`
	ConsequencesOfIgnoring string     `json:"consequences_of_ignoring"`
	NextSteps              string     `json:"next_steps"`
	Severity               Severity   `json:"severity"`
	Triggers               []string   `json:"triggers"`
	VerifiedBy             *string    `json:"verified_by,omitempty"`
	VerifiedAt             *time.Time `json:"verified_at,omitempty"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// Label - короткая подпись для списка результатов поиска.
// Неизвестная важность показывается как low.
func (s Severity) Label() string {
	switch s {
	case SeverityHigh:
		return "Action Required"
	case SeverityMedium:
		return "Review"
	default:
		return "Info"
	}
}

// DetailLabel - подпись на странице уведомления
func (s Severity) DetailLabel() string {
	switch s {
	case SeverityHigh:
		return "Action Required"
	case SeverityMedium:
		return "Review Needed"
	default:
		return "Informational"
	}
}

// Class - суффикс css-класса бейджа
func (s Severity) Class() string {
	if s.Valid() {
		return string(s)
	}
	return string(SeverityLow)
}

// IsVerified - карточку проверил эксперт
func (n *Notice) IsVerified() bool {
	return n.VerifiedBy != nil && *n.VerifiedBy != ""
}

func (n *Notice) VerifiedByName() string {
	if n.VerifiedBy == nil {
		return ""
	}
	return *n.VerifiedBy
}
