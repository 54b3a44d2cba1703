// Package mcptools exposes the badge wallet and the course advisor as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"edusign/internal/badge"
	"edusign/internal/history"
)

type BadgeService interface {
	List(ctx context.Context) ([]badge.Badge, error)
	Mint(ctx context.Context, f badge.Fields) (badge.Badge, error)
	Update(ctx context.Context, id string, p badge.Patch) (badge.Badge, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Clear(ctx context.Context) error
}

type AdvisorService interface {
	Ask(ctx context.Context, text string) (history.Entry, bool)
}

type ListBadgesParams struct{}

type MintBadgeParams struct {
	Name        string `json:"name" mcp:"badge title, at least 3 characters"`
	Description string `json:"description" mcp:"what was achieved, at least 10 characters"`
	Image       string `json:"image" mcp:"absolute http(s) URL of the badge image"`
}

type UpdateBadgeParams struct {
	ID          string  `json:"id" mcp:"identifier of the badge to update"`
	Name        *string `json:"name,omitempty" mcp:"new title"`
	Description *string `json:"description,omitempty" mcp:"new description"`
	Image       *string `json:"image,omitempty" mcp:"new image URL"`
}

type DeleteBadgeParams struct {
	ID string `json:"id" mcp:"identifier of the badge to delete"`
}

type ClearBadgesParams struct{}

type AskAdvisorParams struct {
	Message string `json:"message" mcp:"question for the course advisor"`
}

// Server holds the tool handlers.
type Server struct {
	badges  BadgeService
	advisor AdvisorService
	log     *zap.Logger
}

func NewServer(badges BadgeService, advisor AdvisorService, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{badges: badges, advisor: advisor, log: log}
}

// Register adds every tool to srv.
func (s *Server) Register(srv *mcp.Server) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_badges",
		Description: "Lists every achievement badge in the wallet as JSON",
	}, s.ListBadges)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "mint_badge",
		Description: "Mints a new achievement badge after the simulated minting delay",
	}, s.MintBadge)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "update_badge",
		Description: "Updates the supplied fields of an existing badge",
	}, s.UpdateBadge)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_badge",
		Description: "Deletes a badge by id",
	}, s.DeleteBadge)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "clear_badges",
		Description: "Removes the whole collection; the default badges come back on next read",
	}, s.ClearBadges)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "ask_advisor",
		Description: "Asks the AI course advisor for recommendations based on the wallet",
	}, s.AskAdvisor)
}

// NewMCPServer builds a ready-to-run MCP server with all tools registered.
func NewMCPServer(badges BadgeService, advisor AdvisorService, log *zap.Logger, version string) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "edusign-mcp",
		Version: version,
	}, nil)
	NewServer(badges, advisor, log).Register(srv)
	return srv
}

func (s *Server) ListBadges(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[ListBadgesParams]) (*mcp.CallToolResultFor[any], error) {
	badges, err := s.badges.List(ctx)
	if err != nil {
		s.log.Warn("Listing badges failed", zap.Error(err))
		return errorResult(fmt.Sprintf("❌ Failed to read badges: %v", err)), nil
	}

	data, err := json.MarshalIndent(badges, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("❌ Failed to encode badges: %v", err)), nil
	}
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		Meta:    map[string]any{"count": len(badges)},
	}, nil
}

func (s *Server) MintBadge(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[MintBadgeParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments

	b, err := s.badges.Mint(ctx, badge.Fields{
		Name:        args.Name,
		Description: args.Description,
		Image:       args.Image,
	})
	if err != nil {
		return s.failure("mint", err), nil
	}
	return textResult(fmt.Sprintf("✅ Minted badge '%s' with id %s", b.Name, b.ID)), nil
}

func (s *Server) UpdateBadge(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[UpdateBadgeParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	if args.ID == "" {
		return errorResult("❌ id is required"), nil
	}

	b, found, err := s.badges.Update(ctx, args.ID, badge.Patch{
		Name:        args.Name,
		Description: args.Description,
		Image:       args.Image,
	})
	if err != nil {
		return s.failure("update", err), nil
	}
	if !found {
		return errorResult(fmt.Sprintf("❌ Badge %s not found", args.ID)), nil
	}
	return textResult(fmt.Sprintf("✅ Updated badge '%s' (%s)", b.Name, b.ID)), nil
}

func (s *Server) DeleteBadge(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[DeleteBadgeParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	if args.ID == "" {
		return errorResult("❌ id is required"), nil
	}

	removed, err := s.badges.Delete(ctx, args.ID)
	if err != nil {
		return s.failure("delete", err), nil
	}
	if !removed {
		return errorResult(fmt.Sprintf("❌ Badge %s not found", args.ID)), nil
	}
	return textResult(fmt.Sprintf("✅ Deleted badge %s", args.ID)), nil
}

func (s *Server) ClearBadges(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[ClearBadgesParams]) (*mcp.CallToolResultFor[any], error) {
	if err := s.badges.Clear(ctx); err != nil {
		return s.failure("clear", err), nil
	}
	return textResult("✅ Wallet cleared"), nil
}

// AskAdvisor returns the transcript entry that settled this question.
func (s *Server) AskAdvisor(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[AskAdvisorParams]) (*mcp.CallToolResultFor[any], error) {
	reply, ok := s.advisor.Ask(ctx, params.Arguments.Message)
	if !ok {
		return errorResult("❌ message is required"), nil
	}

	res := textResult(reply.Text)
	res.IsError = reply.Kind == history.KindError
	return res, nil
}

func (s *Server) failure(op string, err error) *mcp.CallToolResultFor[any] {
	if errors.Is(err, badge.ErrValidation) {
		return errorResult("❌ " + err.Error())
	}
	s.log.Error("Badge tool failed", zap.String("op", op), zap.Error(err))
	return errorResult(fmt.Sprintf("❌ Failed to %s badge: %v", op, err))
}

func textResult(text string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
