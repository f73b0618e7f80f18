package services

import (
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apiError "github.com/verisponsor/verisponsor/errors"
	"github.com/verisponsor/verisponsor/models"
	"gorm.io/gorm"
)

// fakeChatRepo is an in-memory ChatRepository with the same transactional
// semantics as the gorm implementation: appends update the denormalized
// conversation columns in the same step.
type fakeChatRepo struct {
	mu            sync.Mutex
	conversations map[uuid.UUID]*models.Conversation
	messages      map[uuid.UUID][]*models.Message
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		conversations: make(map[uuid.UUID]*models.Conversation),
		messages:      make(map[uuid.UUID][]*models.Message),
	}
}

func (f *fakeChatRepo) CreateConversation(conv *models.Conversation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if conv.ID == uuid.Nil {
		conv.ID = uuid.New()
	}
	cp := *conv
	f.conversations[conv.ID] = &cp
	return nil
}

func (f *fakeChatRepo) FindConversationByID(id uuid.UUID) (*models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	conv, ok := f.conversations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *conv
	return &cp, nil
}

func (f *fakeChatRepo) FindConversationByParticipants(a, b uuid.UUID) (*models.Conversation, error) {
	first, second := models.CanonicalPair(a, b)
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, conv := range f.conversations {
		if conv.ParticipantAID == first && conv.ParticipantBID == second {
			cp := *conv
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeChatRepo) ListConversationsForUser(userID uuid.UUID) ([]models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var convs []models.Conversation
	for _, conv := range f.conversations {
		if conv.HasParticipant(userID) {
			convs = append(convs, *conv)
		}
	}
	sort.SliceStable(convs, func(i, j int) bool {
		// newest activity first, message-less conversations last
		switch {
		case convs[i].LastMessageAt == nil:
			return false
		case convs[j].LastMessageAt == nil:
			return true
		default:
			return convs[i].LastMessageAt.After(*convs[j].LastMessageAt)
		}
	})
	return convs, nil
}

func (f *fakeChatRepo) SaveMessage(msg *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	conv, ok := f.conversations[msg.ConversationID]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	cp := *msg
	f.messages[msg.ConversationID] = append(f.messages[msg.ConversationID], &cp)

	conv.LastMessageID = &cp.ID
	conv.LastMessage = &cp
	t := cp.CreatedAt
	conv.LastMessageAt = &t
	if msg.ReceiverID == conv.ParticipantAID {
		conv.UnreadA++
	} else {
		conv.UnreadB++
	}
	return nil
}

func (f *fakeChatRepo) ListMessagesByConversation(conversationID uuid.UUID) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := make([]models.Message, 0, len(f.messages[conversationID]))
	for _, m := range f.messages[conversationID] {
		msgs = append(msgs, *m)
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs, nil
}

func (f *fakeChatRepo) MarkConversationRead(conversationID, viewerID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	conv, ok := f.conversations[conversationID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for _, m := range f.messages[conversationID] {
		if m.ReceiverID == viewerID {
			m.Read = true
		}
	}
	if viewerID == conv.ParticipantAID {
		conv.UnreadA = 0
	} else if viewerID == conv.ParticipantBID {
		conv.UnreadB = 0
	}
	return nil
}

// fakeAuthRepo backs the user lookups the chat service performs.
type fakeAuthRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeAuthRepo) addUser(name, role string) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &models.User{
		Name:  name,
		Email: name + "@example.com",
		Role:  role,
	}
	u.ID = uuid.New()
	f.users[u.ID] = u
	return u
}

func (f *fakeAuthRepo) CreateUser(user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeAuthRepo) IsEmailExist(email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return assert.AnError
		}
	}
	return nil
}

func (f *fakeAuthRepo) FindUserByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepo) FindUserByID(id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeAuthRepo) UpdateUser(user *models.User) error { return nil }
func (f *fakeAuthRepo) UpdatePassword(password, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			u.HashedPassword = password
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
func (f *fakeAuthRepo) EditUserProfile(userID uuid.UUID, details *models.EditProfileRequest) error {
	return nil
}
func (f *fakeAuthRepo) UpdateUserAvatar(userID uuid.UUID, avatarURL string) error { return nil }
func (f *fakeAuthRepo) SetUserOnline(userID uuid.UUID, online bool) error         { return nil }
func (f *fakeAuthRepo) AddToBlackList(blacklist *models.Blacklist) error          { return nil }
func (f *fakeAuthRepo) IsTokenInBlacklist(token string) bool                      { return false }
func (f *fakeAuthRepo) GetAllUsers() ([]models.User, error)                       { return nil, nil }

func newChatFixture(t *testing.T) (ChatService, *fakeChatRepo, *fakeAuthRepo) {
	t.Helper()
	chatRepo := newFakeChatRepo()
	authRepo := newFakeAuthRepo()
	return NewChatService(chatRepo, authRepo, nil), chatRepo, authRepo
}

func TestStartConversation(t *testing.T) {
	t.Run("same unordered pair resolves to one conversation", func(t *testing.T) {
		svc, _, authRepo := newChatFixture(t)
		u1 := authRepo.addUser("sponsor", models.RoleSponsor)
		u2 := authRepo.addUser("creator", models.RoleYouTuber)

		conv1, apiErr := svc.StartConversation(u1.ID, u2.ID)
		require.Nil(t, apiErr)
		conv2, apiErr := svc.StartConversation(u2.ID, u1.ID)
		require.Nil(t, apiErr)

		assert.Equal(t, conv1.ID, conv2.ID)
		assert.Equal(t, 0, conv1.UnreadFor(u1.ID))
		assert.Equal(t, 0, conv1.UnreadFor(u2.ID))
		assert.Nil(t, conv1.LastMessage)
	})

	t.Run("self conversation is rejected", func(t *testing.T) {
		svc, _, authRepo := newChatFixture(t)
		u1 := authRepo.addUser("sponsor", models.RoleSponsor)

		_, apiErr := svc.StartConversation(u1.ID, u1.ID)
		require.NotNil(t, apiErr)
		assert.Equal(t, apiError.ErrInvalidParticipants, apiErr)
	})

	t.Run("unknown counterpart is rejected", func(t *testing.T) {
		svc, _, authRepo := newChatFixture(t)
		u1 := authRepo.addUser("sponsor", models.RoleSponsor)

		_, apiErr := svc.StartConversation(u1.ID, uuid.New())
		require.NotNil(t, apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
	})
}

func TestSendMessage(t *testing.T) {
	t.Run("append updates last message and receiver unread", func(t *testing.T) {
		svc, _, authRepo := newChatFixture(t)
		u1 := authRepo.addUser("sponsor", models.RoleSponsor)
		u2 := authRepo.addUser("creator", models.RoleYouTuber)
		conv, apiErr := svc.StartConversation(u1.ID, u2.ID)
		require.Nil(t, apiErr)

		msg, apiErr := svc.SendMessage(conv.ID, u1.ID, "Hello")
		require.Nil(t, apiErr)
		assert.Equal(t, u2.ID, msg.ReceiverID)
		assert.False(t, msg.Read)

		updated, apiErr := svc.StartConversation(u1.ID, u2.ID)
		require.Nil(t, apiErr)
		require.NotNil(t, updated.LastMessage)
		assert.Equal(t, msg.ID, updated.LastMessage.ID)
		assert.Equal(t, 1, updated.UnreadFor(u2.ID))
		assert.Equal(t, 0, updated.UnreadFor(u1.ID))
	})

	t.Run("non participant sender is rejected", func(t *testing.T) {
		svc, _, authRepo := newChatFixture(t)
		u1 := authRepo.addUser("sponsor", models.RoleSponsor)
		u2 := authRepo.addUser("creator", models.RoleYouTuber)
		outsider := authRepo.addUser("outsider", models.RoleSponsor)
		conv, apiErr := svc.StartConversation(u1.ID, u2.ID)
		require.Nil(t, apiErr)

		_, apiErr = svc.SendMessage(conv.ID, outsider.ID, "let me in")
		require.NotNil(t, apiErr)
		assert.Equal(t, apiError.ErrInvalidParticipant, apiErr)
	})

	t.Run("blank content is rejected", func(t *testing.T) {
		svc, _, authRepo := newChatFixture(t)
		u1 := authRepo.addUser("sponsor", models.RoleSponsor)
		u2 := authRepo.addUser("creator", models.RoleYouTuber)
		conv, apiErr := svc.StartConversation(u1.ID, u2.ID)
		require.Nil(t, apiErr)

		_, apiErr = svc.SendMessage(conv.ID, u1.ID, "   \t ")
		require.NotNil(t, apiErr)
		assert.Equal(t, apiError.ErrEmptyContent, apiErr)
	})

	t.Run("unknown conversation is rejected", func(t *testing.T) {
		svc, _, authRepo := newChatFixture(t)
		u1 := authRepo.addUser("sponsor", models.RoleSponsor)

		_, apiErr := svc.SendMessage(uuid.New(), u1.ID, "hello?")
		require.NotNil(t, apiErr)
		assert.Equal(t, apiError.ErrConversationNotFound, apiErr)
	})
}

func TestListMessagesOrdering(t *testing.T) {
	svc, chatRepo, authRepo := newChatFixture(t)
	u1 := authRepo.addUser("sponsor", models.RoleSponsor)
	u2 := authRepo.addUser("creator", models.RoleYouTuber)
	conv, apiErr := svc.StartConversation(u1.ID, u2.ID)
	require.Nil(t, apiErr)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		sender, receiver := u1.ID, u2.ID
		if i%2 == 1 {
			sender, receiver = u2.ID, u1.ID
		}
		err := chatRepo.SaveMessage(&models.Message{
			ID:             uuid.New(),
			ConversationID: conv.ID,
			SenderID:       sender,
			ReceiverID:     receiver,
			Content:        "msg",
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	msgs, apiErr := svc.ListMessages(conv.ID, u1.ID)
	require.Nil(t, apiErr)
	require.Len(t, msgs, 5)
	for i := 1; i < len(msgs); i++ {
		assert.False(t, msgs[i].CreatedAt.Before(msgs[i-1].CreatedAt),
			"messages must be in non-decreasing timestamp order")
	}

	// denormalized last message matches the newest stored message
	updated, err := chatRepo.FindConversationByID(conv.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.LastMessage)
	assert.Equal(t, msgs[len(msgs)-1].ID, updated.LastMessage.ID)
}

func TestMarkConversationRead(t *testing.T) {
	svc, _, authRepo := newChatFixture(t)
	u1 := authRepo.addUser("sponsor", models.RoleSponsor)
	u2 := authRepo.addUser("creator", models.RoleYouTuber)
	conv, apiErr := svc.StartConversation(u1.ID, u2.ID)
	require.Nil(t, apiErr)

	_, apiErr = svc.SendMessage(conv.ID, u1.ID, "one")
	require.Nil(t, apiErr)
	_, apiErr = svc.SendMessage(conv.ID, u1.ID, "two")
	require.Nil(t, apiErr)

	require.Nil(t, svc.MarkConversationRead(conv.ID, u2.ID))

	msgs, apiErr := svc.ListMessages(conv.ID, u2.ID)
	require.Nil(t, apiErr)
	for _, m := range msgs {
		assert.True(t, m.Read)
	}
	updated, apiErr := svc.StartConversation(u1.ID, u2.ID)
	require.Nil(t, apiErr)
	assert.Equal(t, 0, updated.UnreadFor(u2.ID))

	// idempotent: a second call leaves the state unchanged
	require.Nil(t, svc.MarkConversationRead(conv.ID, u2.ID))
	again, apiErr := svc.StartConversation(u1.ID, u2.ID)
	require.Nil(t, apiErr)
	assert.Equal(t, 0, again.UnreadFor(u2.ID))
}

func TestListConversationsOrdering(t *testing.T) {
	svc, _, authRepo := newChatFixture(t)
	viewer := authRepo.addUser("viewer", models.RoleSponsor)
	a := authRepo.addUser("a", models.RoleYouTuber)
	b := authRepo.addUser("b", models.RoleYouTuber)
	c := authRepo.addUser("c", models.RoleYouTuber)

	convA, apiErr := svc.StartConversation(viewer.ID, a.ID)
	require.Nil(t, apiErr)
	convB, apiErr := svc.StartConversation(viewer.ID, b.ID)
	require.Nil(t, apiErr)
	convC, apiErr := svc.StartConversation(viewer.ID, c.ID)
	require.Nil(t, apiErr)

	// activity in A, then B; C stays empty
	_, apiErr = svc.SendMessage(convA.ID, a.ID, "first")
	require.Nil(t, apiErr)
	time.Sleep(2 * time.Millisecond)
	_, apiErr = svc.SendMessage(convB.ID, b.ID, "second")
	require.Nil(t, apiErr)

	convs, apiErr := svc.ListConversations(viewer.ID)
	require.Nil(t, apiErr)
	require.Len(t, convs, 3)
	assert.Equal(t, convB.ID, convs[0].ID)
	assert.Equal(t, convA.ID, convs[1].ID)
	assert.Equal(t, convC.ID, convs[2].ID, "conversations without messages sort last")

	// counterpart info rides along for list rendering
	require.NotNil(t, convs[0].Counterpart)
	assert.Equal(t, b.ID, convs[0].Counterpart.ID)
}

func TestConversationEndToEnd(t *testing.T) {
	svc, _, authRepo := newChatFixture(t)
	u1 := authRepo.addUser("u1", models.RoleSponsor)
	u2 := authRepo.addUser("u2", models.RoleYouTuber)

	conv, apiErr := svc.StartConversation(u1.ID, u2.ID)
	require.Nil(t, apiErr)
	assert.Equal(t, 0, conv.UnreadFor(u2.ID))

	_, apiErr = svc.SendMessage(conv.ID, u1.ID, "Hello")
	require.Nil(t, apiErr)

	listed, apiErr := svc.ListConversations(u2.ID)
	require.Nil(t, apiErr)
	require.Len(t, listed, 1)
	assert.Equal(t, conv.ID, listed[0].ID)
	assert.Equal(t, 1, listed[0].UnreadCount)
	require.NotNil(t, listed[0].LastMessage)
	assert.Equal(t, "Hello", listed[0].LastMessage.Content)

	msgs, apiErr := svc.OpenConversation(conv.ID, u2.ID)
	require.Nil(t, apiErr)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].Read)

	listed, apiErr = svc.ListConversations(u2.ID)
	require.Nil(t, apiErr)
	assert.Equal(t, 0, listed[0].UnreadCount)

	// the sender's perspective was never affected
	sender, apiErr := svc.ListConversations(u1.ID)
	require.Nil(t, apiErr)
	assert.Equal(t, 0, sender[0].UnreadCount)
}
