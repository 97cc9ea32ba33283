package ticket

import (
	"fmt"

	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
)

// ValidStatus indica si s es un estado de ticket.
func ValidStatus(s string) bool {
	return s == entity.TicketStatusOpen || s == entity.TicketStatusClosed
}

// NormalizePriority aplica el default medium y valida el valor.
func NormalizePriority(p string) (string, error) {
	switch p {
	case "":
		return entity.TicketPriorityMedium, nil
	case entity.TicketPriorityHigh, entity.TicketPriorityMedium, entity.TicketPriorityLow:
		return p, nil
	}
	return "", fmt.Errorf("%w: priority must be high, medium or low", domain.ErrInvalidInput)
}

// CanAccess dueño o roles admin/support.
func CanAccess(t *entity.SupportTicket, userID, role string) bool {
	return t.UserID == userID || role == entity.RoleAdmin || role == entity.RoleSupport
}

// SeesAll indica si el rol ve todos los tickets en los listados.
func SeesAll(role string) bool {
	return role == entity.RoleAdmin || role == entity.RoleSupport
}

// StatusAfterMessage un mensaje sobre un ticket cerrado lo reabre.
func StatusAfterMessage(current string) string {
	if current == entity.TicketStatusClosed {
		return entity.TicketStatusOpen
	}
	return current
}
