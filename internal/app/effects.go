package app

import (
	"context"
	"fmt"

	"github.com/shan145/event-management-client/internal/service"
	"github.com/shan145/event-management-client/pkg/eventsdk"
)

// executeEffects issues the REST calls a transition owes the server. Event
// effects return the server's updated event, which is written back to the
// cache so the mirror converges even if the server resolved things
// differently (e.g. a race with another admin).
func (a *App) executeEffects(ctx context.Context, effects []service.SideEffect) error {
	for _, eff := range effects {
		if err := a.executeEffect(ctx, eff); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) executeEffect(ctx context.Context, eff service.SideEffect) error {
	var updated *eventsdk.Event
	var err error

	switch eff.Kind {
	case service.EffectJoinEvent:
		updated, err = a.session.JoinEvent(ctx, eff.EventID)
	case service.EffectApproveAttendee:
		updated, err = a.session.ApproveAttendee(ctx, eff.EventID, eff.UserID)
	case service.EffectMarkNotGoing:
		updated, err = a.session.MarkNoGo(ctx, eff.EventID, eff.UserID)
	case service.EffectMoveToWaitlist:
		updated, err = a.session.MoveToWaitlist(ctx, eff.EventID, eff.UserID)
	case service.EffectAddMember:
		err = a.session.AddMember(ctx, eff.GroupID, eff.UserID)
	case service.EffectRemoveMember:
		err = a.session.RemoveMember(ctx, eff.GroupID, eff.UserID)
	case service.EffectPromoteAdmin:
		err = a.session.AddGroupAdmin(ctx, eff.GroupID, eff.UserID)
	case service.EffectDemoteAdmin:
		err = a.session.RemoveGroupAdmin(ctx, eff.GroupID, eff.UserID)
	case service.EffectLeaveGroup:
		err = a.session.LeaveGroup(ctx, eff.GroupID)
	default:
		return fmt.Errorf("unknown side effect kind %d", eff.Kind)
	}
	if err != nil {
		return err
	}

	if updated != nil {
		return a.store.Events().UpsertEvent(ctx, toDomainEvent(*updated))
	}
	return nil
}
