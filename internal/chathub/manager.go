package chathub

import (
	"log"

	"chatapp/backend/internal/auth"
	"chatapp/backend/internal/models"
)

// ManagerService owns the session registry and routes every inbound
// frame to the relay or the broadcaster. Frames from one connection are
// handled in arrival order (the read pump calls HandleFrame inline);
// different connections run concurrently.
type ManagerService struct {
	Registry    *Registry
	Relay       *RelayService
	Broadcaster *Broadcaster
	Verifier    auth.TokenVerifier
}

func NewManagerService(relay *RelayService, broadcaster *Broadcaster, verifier auth.TokenVerifier) *ManagerService {
	return &ManagerService{
		Registry:    NewRegistry(),
		Relay:       relay,
		Broadcaster: broadcaster,
		Verifier:    verifier,
	}
}

// Register admits a session and starts its pumps.
func (m *ManagerService) Register(c Client) {
	m.Registry.Add(c)
	c.Run()
}

// Unregister removes a session and closes it.
func (m *ManagerService) Unregister(c Client) {
	m.Registry.Remove(c)
}

// HandleFrame dispatches one inbound frame by its kind. The kind set is
// closed; unknown kinds are dropped with a log line.
func (m *ManagerService) HandleFrame(c Client, f models.Frame) {
	switch f.Kind {
	case models.FrameConnect:
		m.handleConnect(c, f)

	case models.FrameChat:
		if !m.authorize(c, f, "senderId") {
			return
		}
		// Anonymous sessions may send chat with a payload-claimed
		// sender. Inherited lenient posture; tightening it is a product
		// decision, not a transport one.
		_, err := m.Relay.Relay(f.Get("senderId"), f.Get("receiverId"), f.Get("message"), f.Get("senderName"))
		if err != nil {
			log.Printf("Chat frame rejected: %v", err)
		}

	case models.FrameTyping:
		m.Broadcaster.Typing(f.Get("senderId"), f.Get("receiverId"), f.Get("isTyping"))

	case models.FrameStatus:
		if !m.authorize(c, f, "userId") {
			return
		}
		m.Broadcaster.Status(f.Get("userId"), f.Get("status"))

	case models.FrameJoin:
		if !m.authorize(c, f, "userId") {
			return
		}
		action := f.Get("action")
		if action == "" {
			action = "join"
		}
		m.Broadcaster.JoinLeave(f.Get("userId"), action)

	case models.FrameDisconnect:
		userID := f.Get("userId")
		if userID == "" {
			userID = c.GetUserID()
		}
		m.Broadcaster.Disconnected(userID)

	case models.FrameSubscribe:
		m.handleSubscribe(c, f)

	case models.FrameTest:
		userID := f.Get("userId")
		if userID == "" {
			userID = c.GetUserID()
		}
		m.Broadcaster.Test(userID, f.Get("message"), c.GetUserID())

	default:
		log.Printf("Dropping frame with unknown kind %q from %s", f.Kind, c.GetUserID())
	}
}

// authorize checks the frame's claimed actor against the session's
// bound identity. Authenticated sessions must claim themselves; a
// mismatch drops the frame and warns the caller on its private error
// queue. Anonymous sessions pass unchecked.
func (m *ManagerService) authorize(c Client, f models.Frame, actorField string) bool {
	if !c.IsAuthenticated() {
		return true
	}
	claimed := f.Get(actorField)
	if claimed == "" || claimed == c.GetUserID() {
		return true
	}

	log.Printf("Unauthorized %s frame: %s claimed %s", f.Kind, c.GetUserID(), claimed)
	env, err := models.NewEnvelope(models.UserQueue(c.GetUserID(), models.QueueErrors), map[string]string{
		"error": "Unauthorized",
		"frame": string(f.Kind),
	})
	if err == nil {
		m.deliver(c, env)
	}
	return false
}

// handleConnect processes the first-frame handshake. An embedded
// credential upgrades an anonymous session to the verified identity; an
// invalid one rebinds the session to a fresh anonymous identity without
// terminating the connection.
func (m *ManagerService) handleConnect(c Client, f models.Frame) {
	if token := f.Get("token"); token != "" {
		uid, err := m.Verifier.Verify(token)
		if err != nil {
			log.Printf("Invalid connect-frame token for %s: %v", c.GetUserID(), err)
			m.Registry.Rebind(c, auth.NewAnonymousID(), false)
		} else {
			log.Printf("Session upgraded via connect frame: %s", uid)
			m.Registry.Rebind(c, uid, true)
		}
	}

	userID := f.Get("userId")
	if userID == "" {
		userID = c.GetUserID()
	}
	m.Broadcaster.Connected(userID)
}

// handleSubscribe adds a shared-topic subscription. Private queues are
// implicit (delivery is keyed by identity) and cannot be subscribed to.
func (m *ManagerService) handleSubscribe(c Client, f models.Frame) {
	dest := f.Get("destination")
	if !models.IsTopicDestination(dest) {
		log.Printf("Ignoring subscribe to non-topic destination %q from %s", dest, c.GetUserID())
		return
	}
	c.Subscribe(dest)
	log.Printf("Session %s subscribed to %s", c.GetUserID(), dest)
}
