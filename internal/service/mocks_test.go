package service

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mkarpova/slidedeck-server/internal/model"
)

// MockUserStore mocks the UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindActiveSessions(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserStore) Create(ctx context.Context, user *model.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserStore) BulkReplace(ctx context.Context, users []*model.User) error {
	args := m.Called(ctx, users)
	return args.Error(0)
}

// MockDeckStore mocks the DeckStore interface
type MockDeckStore struct {
	mock.Mock
}

func (m *MockDeckStore) Create(ctx context.Context, deck *model.Deck) (primitive.ObjectID, error) {
	args := m.Called(ctx, deck)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockDeckStore) BulkReplace(ctx context.Context, decks []*model.Deck) error {
	args := m.Called(ctx, decks)
	return args.Error(0)
}

// MockElementStore mocks the ElementStore interface
type MockElementStore struct {
	mock.Mock
}

func (m *MockElementStore) Create(ctx context.Context, element *model.Element) (primitive.ObjectID, error) {
	args := m.Called(ctx, element)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockElementStore) BulkReplace(ctx context.Context, elements []*model.Element) error {
	args := m.Called(ctx, elements)
	return args.Error(0)
}

// MockTokenManager mocks the TokenManager interface
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) Generate(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func (m *MockTokenManager) Parse(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}
