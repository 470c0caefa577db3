package app

import (
	"github.com/shan145/event-management-client/internal/domain"
	"github.com/shan145/event-management-client/pkg/eventsdk"
)

// Wire-to-domain mapping. The SDK speaks the server's JSON shapes; the
// services and the cache speak domain types.

func toDomainGroup(g eventsdk.Group) domain.Group {
	return domain.Group{
		ID:          g.ID,
		Name:        g.Name,
		Tags:        g.Tags,
		MainAdminID: g.AdminID,
		GroupAdmins: g.GroupAdmins,
		Members:     g.Members,
		InviteToken: g.InviteToken,
	}
}

func toDomainGroups(groups []eventsdk.Group) []domain.Group {
	out := make([]domain.Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, toDomainGroup(g))
	}
	return out
}

func toDomainEvent(e eventsdk.Event) domain.Event {
	return domain.Event{
		ID:           e.ID,
		GroupID:      e.GroupID,
		Title:        e.Title,
		Description:  e.Description,
		Date:         e.Date,
		Time:         e.Time,
		Location:     e.Location,
		LocationURL:  e.LocationURL,
		MaxAttendees: e.MaxAttendees,
		Guests:       e.Guests,
		GoingList:    e.GoingList,
		Waitlist:     e.Waitlist,
		NoGoList:     e.NoGoList,
	}
}

func toDomainEvents(events []eventsdk.Event) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		out = append(out, toDomainEvent(e))
	}
	return out
}

func toDomainMessage(m eventsdk.Message) domain.Message {
	sender := m.Sender.FirstName
	if m.Sender.LastName != "" {
		if sender != "" {
			sender += " "
		}
		sender += m.Sender.LastName
	}
	return domain.Message{
		ID:        m.ID,
		EventID:   m.EventID,
		SenderID:  m.Sender.ID,
		Sender:    sender,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func toDomainMessages(msgs []eventsdk.Message) []domain.Message {
	out := make([]domain.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toDomainMessage(m))
	}
	return out
}
