package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	"github.com/animsmith/animsmith/internal/asset"
)

const clipURIPrefix = "animsmith://clip/"

func (s *Server) registerResources() {
	// animsmith://clips/recent — recently authored clips.
	s.mcpServer.AddResource(
		mcplib.NewResource(
			"animsmith://clips/recent",
			"Recent Clips",
			mcplib.WithResourceDescription("Recently authored animation clips in the asset catalog"),
			mcplib.WithMIMEType("application/json"),
		),
		s.handleRecentClips,
	)

	// animsmith://clip/{+path} — full spec of one clip.
	s.mcpServer.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			clipURIPrefix+"{+path}",
			"Clip Spec",
			mcplib.WithTemplateDescription("Full curve data of a single clip by asset path"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		s.handleClipSpec,
	)
}

func (s *Server) handleRecentClips(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	clips, err := s.store.ListClips(ctx, 20)
	if err != nil {
		return nil, fmt.Errorf("mcp: recent clips: %w", err)
	}

	data, err := json.MarshalIndent(clips, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("mcp: marshal clips: %w", err)
	}

	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      "animsmith://clips/recent",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleClipSpec(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	uri := request.Params.URI
	path := strings.TrimPrefix(uri, clipURIPrefix)
	if path == "" || path == uri {
		return nil, fmt.Errorf("mcp: invalid clip URI: %s", uri)
	}

	spec, err := s.store.GetClip(ctx, path)
	if errors.Is(err, asset.ErrNotFound) {
		return nil, fmt.Errorf("mcp: clip %q not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("mcp: load clip: %w", err)
	}

	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("mcp: marshal clip: %w", err)
	}

	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
