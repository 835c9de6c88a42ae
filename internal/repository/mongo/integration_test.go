//go:build integration

package mongo_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mkarpova/slidedeck-server/internal/model"
	repo "github.com/mkarpova/slidedeck-server/internal/repository/mongo"
)

var uri string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		panic(err)
	}
	uri = fmt.Sprintf("mongodb://%s:%s", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestRepositories_PersistAndLoad(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, uri, "slidedeck_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close(ctx) })

	users := repo.NewUserRepository(conn)
	decks := repo.NewDeckRepository(conn)
	elements := repo.NewElementRepository(conn)

	element := &model.Element{ClientID: "e1", Width: 100, Height: 50, Type: "text", Text: "hello"}
	elementID, err := elements.Create(ctx, element)
	require.NoError(t, err)
	element.ID = elementID

	deck := &model.Deck{
		ClientID: "d1",
		Title:    "Launch plan",
		Pages: []*model.Page{{
			ClientID: "p1",
			BgColor:  "#ffffff",
			Elements: []*model.Element{element},
		}},
	}
	deckID, err := decks.Create(ctx, deck)
	require.NoError(t, err)
	deck.ID = deckID

	user := &model.User{
		Email:         "a@x.com",
		Name:          "Alice",
		Password:      "pw",
		SessionActive: true,
		Store:         []*model.Deck{deck},
	}
	userID, err := users.Create(ctx, user)
	require.NoError(t, err)
	user.ID = userID

	loaded, err := users.FindActiveSessions(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	got := loaded[0]
	assert.Equal(t, "a@x.com", got.Email)
	require.Len(t, got.Store, 1)
	assert.Equal(t, "Launch plan", got.Store[0].Title)
	require.Len(t, got.Store[0].Pages, 1)
	require.Len(t, got.Store[0].Pages[0].Elements, 1)
	assert.Equal(t, "hello", got.Store[0].Pages[0].Elements[0].Text)
}

func TestRepositories_BulkReplace(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, uri, "slidedeck_bulk_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close(ctx) })

	users := repo.NewUserRepository(conn)
	elements := repo.NewElementRepository(conn)

	user := &model.User{Email: "b@x.com", Name: "Bob", Password: "pw", SessionActive: true}
	userID, err := users.Create(ctx, user)
	require.NoError(t, err)
	user.ID = userID

	user.Name = "Robert"
	user.SessionActive = false
	require.NoError(t, users.BulkReplace(ctx, []*model.User{user}))

	// Replaced with sessionActive=false, so the populated load skips it.
	loaded, err := users.FindActiveSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	// Empty batches are a no-op.
	require.NoError(t, elements.BulkReplace(ctx, nil))
}

func TestUserRepository_DuplicateEmailRejected(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, uri, "slidedeck_index_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close(ctx) })

	users := repo.NewUserRepository(conn)

	_, err = users.Create(ctx, &model.User{Email: "c@x.com", Name: "Cleo", Password: "pw"})
	require.NoError(t, err)

	_, err = users.Create(ctx, &model.User{Email: "c@x.com", Name: "Copy", Password: "pw"})
	require.Error(t, err)
}
