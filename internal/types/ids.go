// internal/types/ids.go
package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type TicketID string
type ConversationID string
type MessageID string
type ReportID string

// NewTicketID builds an id like TKT-2024-A3F: the given year plus the first
// three characters of a UUID, uppercased. There is no uniqueness check
// against existing tickets; a collision is possible and accepted at demo
// dataset sizes.
func NewTicketID(now time.Time) TicketID {
	suffix := strings.ToUpper(uuid.New().String()[:3])
	return TicketID(fmt.Sprintf("TKT-%d-%s", now.Year(), suffix))
}

func NewConversationID() ConversationID {
	return ConversationID("conv_" + uuid.New().String()[:8])
}

func NewMessageID() MessageID {
	return MessageID("msg_" + uuid.New().String()[:8])
}

func NewReportID() ReportID {
	return ReportID("rpt_" + uuid.New().String()[:8])
}
