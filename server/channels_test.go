package server

import (
	"testing"
)

func TestJoin_CreatesChannel(t *testing.T) {
	s := newTestServer()
	sess, rec := registerClient(t, s, "alice")

	exec(s, sess, "JOIN #test")

	want := []string{
		":alice!u@localhost JOIN #test",
		":server 353 alice = #test :@alice",
		":server 366 alice #test :End of /NAMES list",
		":server 331 alice #test :No topic is set",
		":server 324 alice #test +t",
	}
	if len(rec.lines) != len(want) {
		t.Fatalf("Join should reply %d lines, got %d: %v", len(want), len(rec.lines), rec.lines)
	}
	for i, line := range want {
		if rec.lines[i] != line {
			t.Errorf("Join line %d wrong.\nwant: %s\ngot:  %s", i, line, rec.lines[i])
		}
	}

	ch := s.channels.Get("#test")
	if ch == nil {
		t.Fatal("Channel should exist.")
	}
	if !ch.IsOperator(sess.ID) {
		t.Error("Creator should be an operator.")
	}
}

func TestJoin_ImplicitHashPrefix(t *testing.T) {
	s := newTestServer()
	sess, _ := registerClient(t, s, "alice")

	exec(s, sess, "JOIN test")
	if !s.channels.Contains("#test") {
		t.Error("Bare name should join #test.")
	}
}

func TestJoin_InvalidName(t *testing.T) {
	s := newTestServer()
	sess, rec := registerClient(t, s, "alice")

	exec(s, sess, "JOIN #bad,name")
	if rec.countContaining(" 403 ") != 1 {
		t.Error("Invalid name should draw 403:", rec.lines)
	}
	if s.channels.Len() != 0 {
		t.Error("No channel may be created.")
	}
}

func TestJoin_SecondMemberNotOperator(t *testing.T) {
	s := newTestServer()
	a, recA := registerClient(t, s, "alice")
	b, _ := registerClient(t, s, "bob")

	exec(s, a, "JOIN #test")
	recA.clear()
	exec(s, b, "JOIN #test")

	ch := s.channels.Get("#test")
	if ch.IsOperator(b.ID) {
		t.Error("A later member must not be an operator.")
	}
	if recA.countContaining("JOIN #test") != 1 {
		t.Error("Existing members should see the join:", recA.lines)
	}
}

func TestJoin_AlreadyMember(t *testing.T) {
	s := newTestServer()
	sess, rec := registerClient(t, s, "alice")

	exec(s, sess, "JOIN #test")
	rec.clear()
	exec(s, sess, "JOIN #test")

	if got := rec.last(); got != ":server 443 alice #test :is already on channel" {
		t.Error("Wrong reply:", got)
	}
	if s.channels.Get("#test").Len() != 1 {
		t.Error("Membership must be unchanged.")
	}
}

func TestJoin_BadKey(t *testing.T) {
	s := newTestServer()
	a, _ := registerClient(t, s, "alice")
	b, recB := registerClient(t, s, "bob")

	exec(s, a, "JOIN #test")
	exec(s, a, "MODE #test +k hunter2")

	exec(s, b, "JOIN #test")
	if got := recB.last(); got != ":server 475 bob #test :Cannot join channel (+k)" {
		t.Error("Wrong reply:", got)
	}
	exec(s, b, "JOIN #test wrong")
	if recB.countContaining(" 475 ") != 2 {
		t.Error("Wrong key should be refused:", recB.lines)
	}
	if s.channels.Get("#test").IsMember(b.ID) {
		t.Fatal("Refused client must not be a member.")
	}

	exec(s, b, "JOIN #test hunter2")
	if !s.channels.Get("#test").IsMember(b.ID) {
		t.Error("Correct key should admit the client.")
	}
}

func TestJoin_InviteOnly(t *testing.T) {
	s := newTestServer()
	a, recA := registerClient(t, s, "alice")
	b, recB := registerClient(t, s, "bob")

	exec(s, a, "JOIN #test")
	exec(s, a, "MODE #test +i")
	recA.clear()

	exec(s, b, "JOIN #test")
	if got := recB.last(); got != ":server 473 bob #test :This channel is invite only" {
		t.Error("Wrong reply:", got)
	}

	exec(s, a, "INVITE bob #test")
	if got := recA.last(); got != ":server 341 alice bob #test" {
		t.Error("Wrong confirmation:", got)
	}
	if recB.countContaining(":alice!u@localhost INVITE bob #test") != 1 {
		t.Error("Target should receive the invite:", recB.lines)
	}

	exec(s, b, "JOIN #test")
	if !s.channels.Get("#test").IsMember(b.ID) {
		t.Fatal("Invited client should be admitted.")
	}

	// One invite admits once.
	exec(s, b, "PART #test")
	recB.clear()
	exec(s, b, "JOIN #test")
	if recB.countContaining(" 473 ") != 1 {
		t.Error("A consumed invite must not admit again:", recB.lines)
	}
}

func TestJoin_ChannelFull(t *testing.T) {
	s := newTestServer()
	a, _ := registerClient(t, s, "alice")
	b, recB := registerClient(t, s, "bob")

	exec(s, a, "JOIN #test")
	exec(s, a, "MODE #test +l 1")

	exec(s, b, "JOIN #test")
	if got := recB.last(); got != ":server 471 bob #test :Cannot join channel (+l)" {
		t.Error("Wrong reply:", got)
	}
	if s.channels.Get("#test").IsMember(b.ID) {
		t.Error("Full channel must refuse the join.")
	}
}

func TestPart(t *testing.T) {
	s := newTestServer()
	a, recA := registerClient(t, s, "alice")
	b, recB := registerClient(t, s, "bob")

	exec(s, a, "JOIN #test")
	exec(s, b, "JOIN #test")
	recA.clear()
	recB.clear()

	exec(s, b, "PART #test :off to lunch")

	want := ":bob!u@localhost PART #test :off to lunch"
	if recA.last() != want || recB.last() != want {
		t.Error("Both members should see the part:", recA.lines, recB.lines)
	}
	if s.channels.Get("#test").IsMember(b.ID) {
		t.Error("Leaver should be removed.")
	}

	recA.clear()
	exec(s, a, "PART #test")
	if recA.last() != ":alice!u@localhost PART #test :Leaving" {
		t.Error("Default reason should apply:", recA.lines)
	}
	if s.channels.Contains("#test") {
		t.Error("Emptied channel must be reaped.")
	}
}

func TestPart_Errors(t *testing.T) {
	s := newTestServer()
	a, _ := registerClient(t, s, "alice")
	b, recB := registerClient(t, s, "bob")

	exec(s, b, "PART #test")
	if recB.countContaining(" 403 ") != 1 {
		t.Error("Unknown channel should draw 403:", recB.lines)
	}

	exec(s, a, "JOIN #test")
	recB.clear()
	exec(s, b, "PART #test")
	if recB.countContaining(" 442 ") != 1 {
		t.Error("Non-member should draw 442:", recB.lines)
	}
}

func TestKick(t *testing.T) {
	s := newTestServer()
	a, recA := registerClient(t, s, "alice")
	b, recB := registerClient(t, s, "bob")

	exec(s, a, "JOIN #test")
	exec(s, b, "JOIN #test")
	recA.clear()
	recB.clear()

	exec(s, b, "KICK #test alice")
	if got := recB.last(); got != ":server 482 bob #test :You're not channel operator" {
		t.Error("Wrong reply:", got)
	}
	recB.clear()

	exec(s, a, "KICK #test bob :misbehaving")
	want := ":alice!u@localhost KICK #test bob :misbehaving"
	if recA.last() != want {
		t.Error("Actor should see the kick:", recA.lines)
	}
	if recB.last() != want {
		t.Error("Target should see the kick before removal:", recB.lines)
	}
	if s.channels.Get("#test").IsMember(b.ID) {
		t.Fatal("Target should be removed.")
	}

	recB.clear()
	exec(s, a, "PRIVMSG #test :anyone here")
	if len(recB.lines) != 0 {
		t.Error("Removed member must receive nothing:", recB.lines)
	}
}

func TestKick_DefaultReasonAndErrors(t *testing.T) {
	s := newTestServer()
	a, recA := registerClient(t, s, "alice")
	b, _ := registerClient(t, s, "bob")
	registerClient(t, s, "carol")

	exec(s, a, "KICK #test bob")
	if recA.countContaining(" 403 ") != 1 {
		t.Error("Unknown channel should draw 403:", recA.lines)
	}

	exec(s, a, "JOIN #test")
	exec(s, b, "JOIN #test")
	recA.clear()

	exec(s, a, "KICK #test mallory")
	if recA.countContaining(" 401 ") != 1 {
		t.Error("Unknown nick should draw 401:", recA.lines)
	}

	recA.clear()
	exec(s, a, "KICK #test carol")
	if recA.last() != ":server 441 alice carol #test :They aren't on that channel" {
		t.Error("Wrong reply:", recA.last())
	}

	recA.clear()
	exec(s, a, "KICK #test bob")
	if recA.last() != ":alice!u@localhost KICK #test bob :No reason given" {
		t.Error("Default reason should apply:", recA.last())
	}
}

func TestInvite_Errors(t *testing.T) {
	s := newTestServer()
	a, recA := registerClient(t, s, "alice")
	b, recB := registerClient(t, s, "bob")

	exec(s, a, "JOIN #test")
	exec(s, b, "JOIN #test")
	recA.clear()

	exec(s, a, "INVITE mallory #test")
	if recA.countContaining(" 401 ") != 1 {
		t.Error("Unknown nick should draw 401:", recA.lines)
	}

	recA.clear()
	exec(s, a, "INVITE bob #nowhere")
	if recA.countContaining(" 403 ") != 1 {
		t.Error("Unknown channel should draw 403:", recA.lines)
	}

	recA.clear()
	exec(s, a, "INVITE bob #test")
	if recA.last() != ":server 443 alice bob #test :is already on channel" {
		t.Error("Wrong reply:", recA.last())
	}

	recB.clear()
	exec(s, b, "PART #test")
	recB.clear()
	exec(s, b, "INVITE alice #test")
	if recB.countContaining(" 442 ") != 1 {
		t.Error("Non-member actor should draw 442:", recB.lines)
	}
}

func TestInvite_MemberWithoutOpsMayInvite(t *testing.T) {
	s := newTestServer()
	a, _ := registerClient(t, s, "alice")
	b, _ := registerClient(t, s, "bob")
	c, recC := registerClient(t, s, "carol")

	exec(s, a, "JOIN #test")
	exec(s, b, "JOIN #test")

	exec(s, b, "INVITE carol #test")
	if recC.countContaining("INVITE carol #test") != 1 {
		t.Error("Ordinary members may invite:", recC.lines)
	}

	exec(s, c, "JOIN #test")
	if !s.channels.Get("#test").IsMember(c.ID) {
		t.Error("Invite should hold even without +i.")
	}
}

func TestTopic(t *testing.T) {
	s := newTestServer()
	a, recA := registerClient(t, s, "alice")
	b, recB := registerClient(t, s, "bob")

	exec(s, a, "JOIN #test")
	exec(s, b, "JOIN #test")
	recA.clear()
	recB.clear()

	exec(s, a, "TOPIC #test")
	if recA.last() != ":server 331 alice #test :No topic is set" {
		t.Error("Wrong empty query reply:", recA.last())
	}

	exec(s, b, "TOPIC #test :seize the channel")
	if recB.last() != ":server 482 bob #test :You're not channel operator" {
		t.Error("Non-op must not set the topic under +t:", recB.last())
	}

	recB.clear()
	exec(s, a, "TOPIC #test :launch planning")
	want := ":alice!u@localhost TOPIC #test :launch planning"
	if recB.last() != want {
		t.Error("Topic change should broadcast:", recB.lines)
	}

	recB.clear()
	exec(s, b, "TOPIC #test")
	if recB.last() != ":server 332 bob #test :launch planning" {
		t.Error("Wrong query reply:", recB.last())
	}

	// Dropping +t opens the topic to every member.
	exec(s, a, "MODE #test -t")
	recB.clear()
	exec(s, b, "TOPIC #test :bob was here")
	if recB.countContaining("TOPIC #test :bob was here") != 1 {
		t.Error("Without +t any member may set the topic:", recB.lines)
	}
}

func TestPrivmsg_Channel(t *testing.T) {
	s := newTestServer()
	a, recA := registerClient(t, s, "alice")
	b, recB := registerClient(t, s, "bob")
	c, recC := registerClient(t, s, "carol")

	exec(s, a, "JOIN #test")
	exec(s, b, "JOIN #test")
	exec(s, c, "JOIN #test")
	recA.clear()
	recB.clear()
	recC.clear()

	exec(s, a, "PRIVMSG #test :hello all")

	want := ":alice!u@localhost PRIVMSG #test :hello all"
	if recB.last() != want || recC.last() != want {
		t.Error("Members should receive the message:", recB.lines, recC.lines)
	}
	if len(recA.lines) != 0 {
		t.Error("The sender must not be echoed:", recA.lines)
	}
}

func TestPrivmsg_NonMemberRejected(t *testing.T) {
	s := newTestServer()
	a, _ := registerClient(t, s, "alice")
	b, recB := registerClient(t, s, "bob")

	exec(s, a, "JOIN #test")
	exec(s, b, "JOIN #test")
	recB.clear()

	outsider, recOut := registerClient(t, s, "carol")
	exec(s, outsider, "PRIVMSG #test :let me in")

	if recOut.last() != ":server 404 carol #test :Cannot send to channel" {
		t.Error("Wrong reply:", recOut.last())
	}
	if recB.countContaining("PRIVMSG") != 0 {
		t.Error("No broadcast may occur:", recB.lines)
	}
}

func TestPrivmsg_Direct(t *testing.T) {
	s := newTestServer()
	a, recA := registerClient(t, s, "alice")
	_, recB := registerClient(t, s, "bob")

	exec(s, a, "PRIVMSG bob :psst")
	if recB.last() != ":alice!u@localhost PRIVMSG bob :psst" {
		t.Error("Wrong delivery:", recB.lines)
	}
	if len(recA.lines) != 0 {
		t.Error("No echo to the sender:", recA.lines)
	}

	exec(s, a, "PRIVMSG mallory :psst")
	if recA.countContaining(" 401 ") != 1 {
		t.Error("Unknown nick should draw 401:", recA.lines)
	}
}

func TestPrivmsg_EmptyText(t *testing.T) {
	s := newTestServer()
	a, recA := registerClient(t, s, "alice")

	exec(s, a, "JOIN #test")
	recA.clear()

	exec(s, a, "PRIVMSG #test :")
	if recA.countContaining(" 461 ") != 1 {
		t.Error("Empty text should draw 461:", recA.lines)
	}
}
