package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edusign/internal/badge"
	"edusign/internal/llm"
	"edusign/internal/recommender"
	"edusign/internal/storage"
)

type replyClient struct {
	reply string
	err   error
}

func (c replyClient) Generate(context.Context, []llm.Message) (llm.Response, error) {
	return llm.Response{Content: c.reply}, c.err
}

func newTestServer(t *testing.T, client llm.Client) (*Server, *badge.Store) {
	t.Helper()
	store := badge.NewStore(storage.NewMemoryStore(), badge.WithMintDelay(0))
	return NewServer(store, recommender.NewAdvisor(store, client), nil), store
}

func text(t *testing.T, res *mcp.CallToolResultFor[any]) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func strp(s string) *string { return &s }

func TestListBadges(t *testing.T) {
	s, _ := newTestServer(t, replyClient{})

	res, err := s.ListBadges(context.Background(), nil, &mcp.CallToolParamsFor[ListBadgesParams]{})
	require.NoError(t, err)
	require.False(t, res.IsError)

	var badges []badge.Badge
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &badges))
	assert.Len(t, badges, 3)
	assert.Equal(t, 3, res.Meta["count"])
}

func TestMintBadge(t *testing.T) {
	s, store := newTestServer(t, replyClient{})

	res, err := s.MintBadge(context.Background(), nil, &mcp.CallToolParamsFor[MintBadgeParams]{
		Arguments: MintBadgeParams{
			Name:        "Rust Basics",
			Description: "Completed an intro Rust course",
			Image:       "https://example.com/r.png",
		},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, text(t, res), "Rust Basics")

	badges, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, badges, 4)
}

func TestMintBadge_Invalid(t *testing.T) {
	s, store := newTestServer(t, replyClient{})

	res, err := s.MintBadge(context.Background(), nil, &mcp.CallToolParamsFor[MintBadgeParams]{
		Arguments: MintBadgeParams{Name: "R"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "Badge name")

	badges, _ := store.List(context.Background())
	assert.Len(t, badges, 3)
}

func TestUpdateBadge(t *testing.T) {
	s, store := newTestServer(t, replyClient{})
	ctx := context.Background()

	res, err := s.UpdateBadge(ctx, nil, &mcp.CallToolParamsFor[UpdateBadgeParams]{
		Arguments: UpdateBadgeParams{ID: "edusign_003", Name: strp("Full-Stack Bootcamp")},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	badges, _ := store.List(ctx)
	assert.Equal(t, "Full-Stack Bootcamp", badges[2].Name)
	assert.Equal(t, badge.Seeds()[2].Image, badges[2].Image)

	res, err = s.UpdateBadge(ctx, nil, &mcp.CallToolParamsFor[UpdateBadgeParams]{
		Arguments: UpdateBadgeParams{ID: "missing", Name: strp("Whatever")},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "not found")

	res, err = s.UpdateBadge(ctx, nil, &mcp.CallToolParamsFor[UpdateBadgeParams]{})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestDeleteAndClear(t *testing.T) {
	s, store := newTestServer(t, replyClient{})
	ctx := context.Background()

	res, err := s.DeleteBadge(ctx, nil, &mcp.CallToolParamsFor[DeleteBadgeParams]{
		Arguments: DeleteBadgeParams{ID: "edusign_001"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	res, err = s.DeleteBadge(ctx, nil, &mcp.CallToolParamsFor[DeleteBadgeParams]{
		Arguments: DeleteBadgeParams{ID: "edusign_001"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)

	badges, _ := store.List(ctx)
	assert.Len(t, badges, 2)

	res, err = s.ClearBadges(ctx, nil, &mcp.CallToolParamsFor[ClearBadgesParams]{})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	badges, _ = store.List(ctx)
	assert.Len(t, badges, 3)
}

func TestAskAdvisor(t *testing.T) {
	s, _ := newTestServer(t, replyClient{reply: "Take Go Concurrency."})

	res, err := s.AskAdvisor(context.Background(), nil, &mcp.CallToolParamsFor[AskAdvisorParams]{
		Arguments: AskAdvisorParams{Message: "What next?"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "Take Go Concurrency.", text(t, res))
}

func TestAskAdvisor_Blank(t *testing.T) {
	s, _ := newTestServer(t, replyClient{reply: "x"})

	res, err := s.AskAdvisor(context.Background(), nil, &mcp.CallToolParamsFor[AskAdvisorParams]{
		Arguments: AskAdvisorParams{Message: "  "},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestAskAdvisor_FailureIsErrorResult(t *testing.T) {
	s, _ := newTestServer(t, replyClient{err: errors.New("connection refused")})

	res, err := s.AskAdvisor(context.Background(), nil, &mcp.CallToolParamsFor[AskAdvisorParams]{
		Arguments: AskAdvisorParams{Message: "What next?"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "connection refused")
}

type echoClient struct{}

func (echoClient) Generate(_ context.Context, msgs []llm.Message) (llm.Response, error) {
	q := msgs[len(msgs)-1].Content
	time.Sleep(time.Duration(len(q)%4) * time.Millisecond)
	return llm.Response{Content: "answer to " + q}, nil
}

func TestAskAdvisor_ConcurrentCallsGetOwnAnswer(t *testing.T) {
	s, _ := newTestServer(t, echoClient{})

	const n = 48
	got := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := s.AskAdvisor(context.Background(), nil, &mcp.CallToolParamsFor[AskAdvisorParams]{
				Arguments: AskAdvisorParams{Message: fmt.Sprintf("question %d", i)},
			})
			if err != nil || res.IsError || len(res.Content) != 1 {
				return
			}
			if tc, ok := res.Content[0].(*mcp.TextContent); ok {
				got[i] = tc.Text
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		assert.Equal(t, fmt.Sprintf("answer to question %d", i), got[i])
	}
}

func TestRegister(t *testing.T) {
	s, _ := newTestServer(t, replyClient{})
	srv := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0"}, nil)
	assert.NotPanics(t, func() { s.Register(srv) })
}
