package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/shan145/event-management-client/internal/chat"
	"github.com/shan145/event-management-client/internal/domain"
	"github.com/shan145/event-management-client/internal/service"
	"github.com/shan145/event-management-client/internal/store"
	"github.com/shan145/event-management-client/pkg/eventsdk"
	"github.com/shan145/event-management-client/pkg/idx"
)

func (a *App) cmdLogin(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: eventable login <email>")
	}

	password, err := promptSecret("password: ")
	if err != nil {
		return err
	}

	session, err := a.client.Login(ctx, args[0], password)
	if err != nil {
		return err
	}
	if err := a.saveSession(ctx, session); err != nil {
		return err
	}
	if err := a.refresh(ctx); err != nil {
		return err
	}

	fmt.Printf("signed in as %s\n", session.Identity().Email)
	return nil
}

func (a *App) cmdSignup(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: eventable signup <first> <last> <email>")
	}

	password, err := promptSecret("password: ")
	if err != nil {
		return err
	}

	session, err := a.client.Signup(ctx, eventsdk.SignupRequest{
		FirstName: args[0],
		LastName:  args[1],
		Email:     args[2],
		Password:  password,
	})
	if err != nil {
		return err
	}
	if err := a.saveSession(ctx, session); err != nil {
		return err
	}

	fmt.Printf("account created for %s\n", session.Identity().Email)
	return nil
}

func (a *App) cmdLogout(ctx context.Context) error {
	if err := a.store.Sessions().ClearToken(ctx); err != nil {
		return err
	}
	a.session = nil
	fmt.Println("signed out")
	return nil
}

func (a *App) cmdWhoami() error {
	if err := a.requireSession(); err != nil {
		return err
	}

	ident := a.session.Identity()
	fmt.Printf("%s (%s, role %s)\n", ident.Email, ident.UserID, ident.Role)
	if len(ident.GroupAdminOf) > 0 {
		fmt.Printf("group admin of: %s\n", strings.Join(ident.GroupAdminOf, ", "))
	}
	return nil
}

func (a *App) cmdGroups(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if err := a.refresh(ctx); err != nil {
		return err
	}

	groups, err := a.store.Groups().ListGroups(ctx)
	if err != nil {
		return err
	}

	me := a.session.Identity().UserID
	for _, g := range groups {
		marker := ""
		if g.MainAdminID == me {
			marker = " (main admin)"
		} else if g.IsGroupAdmin(me) {
			marker = " (group admin)"
		}
		fmt.Printf("%s  %s%s  %d members\n", g.ID, g.Name, marker, len(g.Members))
	}
	return nil
}

func (a *App) cmdEvents(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	var wire []eventsdk.Event
	var err error
	switch {
	case len(args) > 0 && args[0] == "--all":
		wire, err = a.session.ListEvents(ctx)
	case len(args) > 0 && args[0] == "--past":
		wire, err = a.session.ListPastEvents(ctx)
	default:
		wire, err = a.session.ListUserEvents(ctx)
	}
	if err != nil {
		return err
	}

	events := toDomainEvents(wire)
	for _, e := range events {
		if err := a.store.Events().UpsertEvent(ctx, e); err != nil {
			return err
		}
	}

	me := a.session.Identity().UserID
	for _, e := range events {
		full := ""
		if e.IsFull() {
			full = " [full]"
		}
		fmt.Printf("%s  %s %s  %s%s  attending %d  waitlist %d  you: %s\n",
			e.ID, e.Date, e.Time, e.Title, full,
			e.AttendingCount(), len(e.Waitlist), e.StatusOf(me))
	}
	return nil
}

func (a *App) cmdRSVP(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if len(args) < 2 {
		return errors.New("usage: eventable rsvp join|approve|deny|waitlist|nogo <event> [user]")
	}

	sub, eventID := args[0], args[1]
	event, group, err := a.loadEventAndGroup(ctx, eventID)
	if err != nil {
		return err
	}

	actor := a.actor(ctx)
	me := a.session.Identity().UserID

	targetUser := me
	if len(args) > 2 {
		targetUser = args[2]
	}

	var updated domain.Event
	var effects []service.SideEffect
	switch sub {
	case "join":
		updated, effects, err = a.rsvp.JoinWaitlist(ctx, actor, group, event)
	case "approve":
		updated, effects, err = a.rsvp.Approve(ctx, actor, group, event, targetUser)
	case "deny":
		updated, effects, err = a.rsvp.Deny(ctx, actor, group, event, targetUser)
	case "waitlist":
		updated, effects, err = a.rsvp.MoveToWaitlist(ctx, actor, group, event, targetUser)
	case "nogo":
		updated, effects, err = a.rsvp.MarkNotGoing(ctx, actor, group, event, targetUser)
	default:
		return fmt.Errorf("unknown rsvp action %q", sub)
	}
	if err != nil {
		return err
	}

	// Optimistic local apply, then the server's word replaces it.
	if err := a.store.Events().UpsertEvent(ctx, updated); err != nil {
		return err
	}
	if err := a.executeEffects(ctx, effects); err != nil {
		return err
	}

	fmt.Printf("%s: %s is now %s\n", updated.Title, targetUser, updated.StatusOf(targetUser))
	return nil
}

func (a *App) cmdMembers(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if len(args) != 3 {
		return errors.New("usage: eventable members add|remove|promote|demote <group> <user>")
	}

	sub, groupID, userID := args[0], args[1], args[2]
	group, err := a.loadGroup(ctx, groupID)
	if err != nil {
		return err
	}
	actor := a.actor(ctx)

	var updatedGroup domain.Group
	var updatedEvents []domain.Event
	var effects []service.SideEffect

	switch sub {
	case "add":
		updatedGroup, effects, err = a.membership.AddMember(ctx, actor, group, userID)
	case "remove":
		var events []domain.Event
		events, err = a.store.Events().ListEventsByGroup(ctx, groupID)
		if err != nil {
			return err
		}
		updatedGroup, updatedEvents, effects, err = a.membership.RemoveMember(ctx, actor, group, events, userID)
	case "promote":
		updatedGroup, effects, err = a.membership.Promote(ctx, actor, group, userID)
	case "demote":
		updatedGroup, effects, err = a.membership.Demote(ctx, actor, group, userID)
	default:
		return fmt.Errorf("unknown members action %q", sub)
	}
	if err != nil {
		return err
	}

	if err := a.applyMembershipResult(ctx, updatedGroup, updatedEvents, effects); err != nil {
		return err
	}

	past := map[string]string{
		"add": "added", "remove": "removed",
		"promote": "promoted", "demote": "demoted",
	}
	fmt.Printf("%s: %s %s\n", updatedGroup.Name, userID, past[sub])
	return nil
}

func (a *App) cmdLeave(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: eventable leave <group>")
	}

	group, err := a.loadGroup(ctx, args[0])
	if err != nil {
		return err
	}
	events, err := a.store.Events().ListEventsByGroup(ctx, group.ID)
	if err != nil {
		return err
	}

	updatedGroup, updatedEvents, effects, err := a.membership.Leave(ctx, a.actor(ctx), group, events)
	if err != nil {
		return err
	}
	if err := a.applyMembershipResult(ctx, updatedGroup, updatedEvents, effects); err != nil {
		return err
	}

	fmt.Printf("left %s\n", updatedGroup.Name)
	return nil
}

func (a *App) cmdInvite(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: eventable invite show <group> | join <token>")
	}

	switch args[0] {
	case "show":
		if err := a.requireSession(); err != nil {
			return err
		}
		group, err := a.loadGroup(ctx, args[1])
		if err != nil {
			return err
		}
		if group.InviteToken == "" {
			return errors.New("no invite token cached for this group; refresh or regenerate")
		}
		fmt.Println(group.InviteToken)
		return nil

	case "join":
		token := args[1]
		preview, err := a.client.GetInvitePreview(ctx, token)
		if err != nil {
			return err
		}
		fmt.Printf("invite to %q\n", preview.Group.Name)

		if a.session == nil {
			return errors.New("sign in first, then rerun to join")
		}
		if err := a.session.JoinViaInvite(ctx, token); err != nil {
			return err
		}
		if err := a.refresh(ctx); err != nil {
			return err
		}
		fmt.Printf("joined %q\n", preview.Group.Name)
		return nil

	default:
		return fmt.Errorf("unknown invite action %q", args[0])
	}
}

func (a *App) cmdChat(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: eventable chat <event>")
	}
	eventID := args[0]

	cached, err := a.store.Messages().ListByEvent(ctx, eventID)
	if err != nil {
		return err
	}

	poller := chat.NewPoller(
		&cachingFetcher{session: a.session, messages: a.store.Messages()},
		a.logger,
		eventID,
		a.cfg.PollInterval,
	)
	poller.Seed(cached)

	printed := make(map[string]bool, len(cached))
	show := func(msgs []domain.Message) {
		for _, m := range msgs {
			if printed[m.ID] {
				continue
			}
			printed[m.ID] = true
			fmt.Printf("[%s] %s: %s\n", m.CreatedAt.Local().Format("15:04"), m.Sender, m.Content)
		}
	}
	show(poller.Messages())
	poller.OnUpdate = show

	runCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	poller.Start()
	defer func() {
		poller.Stop()
		// Everything shown counts as read.
		if last := chat.LastID(poller.Messages()); last != "" {
			_ = a.store.Messages().SetLastSeen(context.Background(), eventID, last)
		}
	}()

	go a.readAndSend(runCtx, poller, eventID)

	<-runCtx.Done()
	fmt.Println()
	return nil
}

// readAndSend forwards stdin lines into the event chat, optimistically
// showing each message before the server acks it.
func (a *App) readAndSend(ctx context.Context, poller *chat.Poller, eventID string) {
	ident := a.session.Identity()
	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		content := strings.TrimSpace(scanner.Text())
		if content == "" {
			continue
		}

		tempID := idx.New().String()
		poller.Append(domain.Message{
			ID:        tempID,
			TempID:    tempID,
			EventID:   eventID,
			SenderID:  ident.UserID,
			Sender:    "me",
			Content:   content,
			CreatedAt: time.Now(),
		})

		acked, err := a.session.SendMessage(ctx, eventID, content)
		if err != nil {
			a.logger.Warn("failed to send message", "error", err)
			poller.Discard(tempID)
			continue
		}
		poller.Ack(tempID, toDomainMessage(*acked))
	}
}

func (a *App) cmdUnread(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	events, err := a.store.Events().ListEvents(ctx)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("no cached events; run: eventable events")
		return nil
	}

	ids := make([]string, 0, len(events))
	byID := make(map[string]domain.Event, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
		byID[e.ID] = e
	}

	counts, err := a.session.UnreadCounts(ctx, ids)
	if err != nil {
		// Offline: fall back to the locally derived count.
		counts = make(map[string]int, len(ids))
		for _, id := range ids {
			seen, err := a.store.Messages().GetLastSeen(ctx, id)
			if err != nil {
				return err
			}
			n, err := a.store.Messages().CountAfter(ctx, id, seen)
			if err != nil {
				return err
			}
			counts[id] = n
		}
	}

	for id, n := range counts {
		if n == 0 {
			continue
		}
		fmt.Printf("%s  %s: %d unread\n", id, byID[id].Title, n)
	}
	return nil
}

func (a *App) cmdTab(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: eventable tab admin|user [n]")
	}
	dashboard := args[0]
	if dashboard != "admin" && dashboard != "user" {
		return fmt.Errorf("unknown dashboard %q", dashboard)
	}

	if len(args) == 1 {
		index, err := a.store.Prefs().GetTabIndex(ctx, dashboard)
		if err != nil {
			return err
		}
		fmt.Println(index)
		return nil
	}

	index, err := strconv.Atoi(args[1])
	if err != nil || index < 0 {
		return fmt.Errorf("tab index must be a non-negative integer")
	}
	return a.store.Prefs().SetTabIndex(ctx, dashboard, index)
}

// ============================================================================
// Helpers
// ============================================================================

// loadEventAndGroup pulls an event and its owning group from the cache,
// refreshing once on a miss before giving up.
func (a *App) loadEventAndGroup(ctx context.Context, eventID string) (domain.Event, domain.Group, error) {
	event, err := a.store.Events().GetEventByID(ctx, eventID)
	if errors.Is(err, store.ErrNotFound) {
		if err := a.refresh(ctx); err != nil {
			return domain.Event{}, domain.Group{}, err
		}
		event, err = a.store.Events().GetEventByID(ctx, eventID)
		if err != nil {
			return domain.Event{}, domain.Group{}, fmt.Errorf("unknown event %q", eventID)
		}
	} else if err != nil {
		return domain.Event{}, domain.Group{}, err
	}

	group, err := a.store.Groups().GetGroupByID(ctx, event.GroupID)
	if err != nil {
		return domain.Event{}, domain.Group{}, err
	}
	return event, group, nil
}

func (a *App) loadGroup(ctx context.Context, groupID string) (domain.Group, error) {
	group, err := a.store.Groups().GetGroupByID(ctx, groupID)
	if errors.Is(err, store.ErrNotFound) {
		if err := a.refresh(ctx); err != nil {
			return domain.Group{}, err
		}
		group, err = a.store.Groups().GetGroupByID(ctx, groupID)
		if err != nil {
			return domain.Group{}, fmt.Errorf("unknown group %q", groupID)
		}
		return group, nil
	}
	return group, err
}

// applyMembershipResult writes the optimistic state to the cache and then
// issues the owed REST calls.
func (a *App) applyMembershipResult(
	ctx context.Context,
	group domain.Group,
	events []domain.Event,
	effects []service.SideEffect,
) error {
	err := a.store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Groups().UpsertGroup(ctx, group); err != nil {
			return err
		}
		for _, e := range events {
			if err := tx.Events().UpsertEvent(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return a.executeEffects(ctx, effects)
}

// cachingFetcher adapts the SDK's message listing to the poller and fills
// the cache as batches arrive.
type cachingFetcher struct {
	session  *eventsdk.Session
	messages store.Messages
}

func (f *cachingFetcher) FetchMessages(ctx context.Context, eventID, sinceID string, limit int) ([]domain.Message, error) {
	wire, err := f.session.ListEventMessages(ctx, eventID, sinceID, limit)
	if err != nil {
		return nil, err
	}

	msgs := toDomainMessages(wire)
	if err := f.messages.UpsertMessages(ctx, msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func promptSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
