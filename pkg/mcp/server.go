// Copyright 2026 cloudygreybeard
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mcp provides an MCP (Model Context Protocol) server for the
// video catalog and playlists.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cloudygreybeard/vidshelf/pkg/adapter"
	"github.com/cloudygreybeard/vidshelf/pkg/app"
	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/output"
	"github.com/cloudygreybeard/vidshelf/pkg/playlist"
)

// URIScheme prefixes every resource URI.
const URIScheme = "vidshelf://"

// Options configures a Server.
type Options struct {
	// Version is reported in serverInfo.
	Version string

	Logger *slog.Logger
}

// Server implements an MCP server over the application state.
type Server struct {
	state   *app.State
	version string
	logger  *slog.Logger
}

// NewServer creates a new MCP server.
func NewServer(state *app.State, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = state.Logger()
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	return &Server{state: state, version: version, logger: logger}
}

// Run serves JSON-RPC on stdin and stdout.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads JSON-RPC requests from r and writes responses to w until r
// is exhausted or ctx is cancelled. Notifications get no response.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	decoder := json.NewDecoder(r)
	encoder := json.NewEncoder(w)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var req Request
		if err := decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				// The stream cannot be resynchronised after a syntax error.
				_ = encoder.Encode(errorResponse(nil, -32700, "Parse error"))
				return fmt.Errorf("decoding request: %w", err)
			}
			s.logger.Warn("invalid request", "error", err)
			continue
		}

		resp := s.handleRequest(ctx, &req)
		if req.ID == nil {
			continue
		}
		if err := encoder.Encode(resp); err != nil {
			s.logger.Error("encoding response", "error", err)
		}
	}
}

func (s *Server) handleRequest(ctx context.Context, req *Request) *Response {
	s.logger.Debug("mcp request", "method", req.Method)
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "ping":
		return result(req.ID, map[string]interface{}{})
	case "resources/list":
		return s.handleResourcesList(req)
	case "resources/read":
		return s.handleResourcesRead(req)
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	default:
		return errorResponse(req.ID, -32601, "Method not found")
	}
}

func (s *Server) handleInitialize(req *Request) *Response {
	return result(req.ID, map[string]interface{}{
		"protocolVersion": "2024-11-05",
		"serverInfo": map[string]string{
			"name":    "vidshelf",
			"version": s.version,
		},
		"capabilities": map[string]interface{}{
			"resources": map[string]bool{
				"subscribe":   false,
				"listChanged": false,
			},
			"tools": map[string]interface{}{},
		},
	})
}

func (s *Server) handleResourcesList(req *Request) *Response {
	resources := []Resource{
		{
			URI:         URIScheme + "catalog",
			Name:        "Video Catalog",
			Description: "The whole catalog in JSON format",
			MimeType:    "application/json",
		},
		{
			URI:         URIScheme + "catalog/markdown",
			Name:        "Video Catalog (Markdown)",
			Description: "The whole catalog in Markdown format",
			MimeType:    "text/markdown",
		},
		{
			URI:         URIScheme + "playlists",
			Name:        "Playlists",
			Description: "Saved playlists with watched state and positions",
			MimeType:    "application/json",
		},
	}

	for _, g := range catalog.Overview(s.state.Catalog().Groups) {
		label := g.ViewName
		if label == "" {
			label = g.Name
		}
		resources = append(resources, Resource{
			URI:         URIScheme + "browse/" + g.Path,
			Name:        label,
			Description: fmt.Sprintf("%d videos under %s", g.TotalVideos, label),
			MimeType:    "application/json",
		})
	}

	return result(req.ID, map[string]interface{}{"resources": resources})
}

func (s *Server) handleResourcesRead(req *Request) *Response {
	var params struct {
		URI string `json:"uri"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, -32602, "Invalid params")
	}

	text, mimeType, err := s.readResource(params.URI)
	if err != nil {
		return errorResponse(req.ID, -32002, err.Error())
	}

	return result(req.ID, map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"uri":      params.URI,
				"mimeType": mimeType,
				"text":     text,
			},
		},
	})
}

func (s *Server) readResource(uri string) (string, string, error) {
	name, ok := strings.CutPrefix(uri, URIScheme)
	if !ok {
		return "", "", fmt.Errorf("unknown resource %q", uri)
	}

	switch {
	case name == "catalog":
		return s.render("json", s.state.Catalog(), "application/json")
	case name == "catalog/markdown":
		return s.render("markdown", s.state.Catalog(), "text/markdown")
	case name == "playlists":
		data, err := playlist.Encode(s.state.Playlists().List())
		return string(data), "application/json", err
	case strings.HasPrefix(name, "browse/"):
		node, ok := s.state.Browse(strings.TrimPrefix(name, "browse/"))
		if !ok {
			return "", "", fmt.Errorf("no catalog node at %q", strings.TrimPrefix(name, "browse/"))
		}
		data, err := json.MarshalIndent(node, "", "  ")
		return string(data), "application/json", err
	}
	return "", "", fmt.Errorf("unknown resource %q", uri)
}

func (s *Server) render(format string, c *catalog.Catalog, mimeType string) (string, string, error) {
	out, ok := adapter.GetOutput(format)
	if !ok {
		return "", "", fmt.Errorf("output adapter %q not registered", format)
	}
	data, err := out.Render(c, output.DefaultRenderOptions())
	if err != nil {
		return "", "", err
	}
	return string(data), mimeType, nil
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{"type": "object", "properties": props}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func (s *Server) handleToolsList(req *Request) *Response {
	tools := []Tool{
		{
			Name:        "reload_catalog",
			Description: "Reload the catalog from its content location",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "search_videos",
			Description: "Search catalog videos by title or channel, ignoring case and diacritics",
			InputSchema: objectSchema(map[string]interface{}{"query": stringProp("Search query")}, "query"),
		},
		{
			Name:        "browse",
			Description: "List the videos and subgroups at a catalog path such as music/rock",
			InputSchema: objectSchema(map[string]interface{}{"path": stringProp("Navigation path; empty lists the roots")}),
		},
		{
			Name:        "list_playlists",
			Description: "List saved playlists",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "create_playlist",
			Description: "Create an empty playlist",
			InputSchema: objectSchema(map[string]interface{}{"name": stringProp("Playlist name")}, "name"),
		},
		{
			Name:        "add_to_playlist",
			Description: "Add a video to a playlist by watch, short or embed URL",
			InputSchema: objectSchema(map[string]interface{}{
				"playlist_id": stringProp("Playlist ID"),
				"url":         stringProp("Video URL"),
			}, "playlist_id", "url"),
		},
		{
			Name:        "resolve_link",
			Description: "Resolve a shared link, platform URL or video ID to a video",
			InputSchema: objectSchema(map[string]interface{}{"ref": stringProp("Link or video ID")}, "ref"),
		},
	}

	return result(req.ID, map[string]interface{}{"tools": tools})
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request) *Response {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, -32602, "Invalid params")
	}

	var args map[string]string
	if len(params.Arguments) > 0 {
		if err := json.Unmarshal(params.Arguments, &args); err != nil {
			return errorResponse(req.ID, -32602, "Invalid tool arguments")
		}
	}

	text, err := s.callTool(ctx, params.Name, args)
	if errors.Is(err, errUnknownTool) {
		return errorResponse(req.ID, -32602, "Unknown tool")
	}
	if err != nil {
		return errorResponse(req.ID, -32000, err.Error())
	}

	return result(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": text},
		},
	})
}

var errUnknownTool = errors.New("unknown tool")

func (s *Server) callTool(ctx context.Context, name string, args map[string]string) (string, error) {
	switch name {
	case "reload_catalog":
		c, err := s.state.Reload(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Loaded %d videos in %d groups", c.Count(), len(c.Groups)), nil

	case "search_videos":
		videos, err := s.state.Search(args["query"])
		if err != nil {
			return "", err
		}
		results := make([]map[string]string, 0, len(videos))
		for _, v := range videos {
			results = append(results, map[string]string{
				"id":      v.Key(),
				"title":   v.Snippet.Title,
				"channel": v.Snippet.ChannelTitle,
				"url":     output.VideoURL(v),
			})
		}
		return withJSON(fmt.Sprintf("Found %d matches:", len(videos)), results)

	case "browse":
		node, ok := s.state.Browse(args["path"])
		if !ok {
			return "", fmt.Errorf("no catalog node at %q", args["path"])
		}
		return withJSON(fmt.Sprintf("%d videos, %d subgroups:", len(node.Videos), len(node.Subgroups)), node)

	case "list_playlists":
		lists := s.state.Playlists().List()
		summary := make([]map[string]interface{}, 0, len(lists))
		for _, p := range lists {
			summary = append(summary, map[string]interface{}{
				"id":      p.ID,
				"name":    p.Name,
				"videos":  len(p.Videos),
				"watched": len(p.WatchedVideos),
			})
		}
		return withJSON(fmt.Sprintf("%d playlists:", len(lists)), summary)

	case "create_playlist":
		p, err := s.state.Playlists().Create(ctx, args["name"])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Created playlist %q with ID %s", p.Name, p.ID), nil

	case "add_to_playlist":
		p, err := s.state.AddVideoURL(ctx, args["playlist_id"], args["url"])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Playlist %q now has %d videos", p.Name, len(p.Videos)), nil

	case "resolve_link":
		link, err := s.state.ResolveDeepLink(ctx, args["ref"])
		if err != nil {
			return "", err
		}
		return withJSON(link.Video.Snippet.Title, link)
	}
	return "", errUnknownTool
}

func withJSON(heading string, v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return heading + "\n" + string(data), nil
}

func result(id interface{}, v interface{}) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Result: v}
}

func errorResponse(id interface{}, code int, message string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	}
}

// MCP Protocol types

// Request represents a JSON-RPC request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents a JSON-RPC response.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents a JSON-RPC error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Resource represents an MCP resource.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// Tool represents an MCP tool.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}
