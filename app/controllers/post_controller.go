package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"postboard/app/repositories"
	"postboard/app/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
	logger      *zap.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, logger *zap.Logger) *PostController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostController{
		postService: postService,
		logger:      logger,
	}
}

// postPayload is the request body for create and update. A nil field was not
// supplied.
type postPayload struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// updateResponse mirrors the stored post with every field rendered as a
// string.
type updateResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Index lists all posts, sorted when sort and direction are given.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	posts, err := pc.postService.ListPosts(query.Get("sort"), query.Get("direction"))
	if err != nil {
		pc.writeServiceError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, posts)
}

// Search filters posts by title and/or content substring.
func (pc *PostController) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	posts, err := pc.postService.SearchPosts(query.Get("title"), query.Get("content"))
	if err != nil {
		pc.writeServiceError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, posts)
}

// Show returns a single post.
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pc.postID(w, r, services.MsgPostAbsent)
	if !ok {
		return
	}
	post, err := pc.postService.GetPost(id)
	if err != nil {
		pc.writeServiceError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, post)
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var payload postPayload
	if _, err := pc.decodeBody(w, r, &payload); err != nil {
		pc.sendError(w, services.MsgInvalidData, http.StatusBadRequest)
		return
	}

	post, err := pc.postService.CreatePost(payload.Title, payload.Content)
	if err != nil {
		pc.writeServiceError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusCreated, post)
}

// Edit handles updating the title and/or content of an existing post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	var payload postPayload
	fields, err := pc.decodeBody(w, r, &payload)
	if err != nil || fields == 0 {
		pc.sendError(w, services.MsgInvalidData, http.StatusBadRequest)
		return
	}

	id, ok := pc.postID(w, r, services.MsgPostAbsent)
	if !ok {
		return
	}

	post, err := pc.postService.UpdatePost(id, payload.Title, payload.Content)
	if err != nil {
		pc.writeServiceError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, updateResponse{
		ID:      strconv.Itoa(post.ID),
		Title:   post.Title,
		Content: post.Content,
	})
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pc.postID(w, r, services.MsgDeleteAbsent)
	if !ok {
		return
	}

	if err := pc.postService.DeletePost(id); err != nil {
		pc.writeServiceError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Post with id %d has been deleted successfully.", id),
	})
}

// WellKnown answers browser and tooling probes under /.well-known/ with an
// empty 204.
func (pc *PostController) WellKnown(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// NotFound is the JSON 404 for unmatched routes.
func (pc *PostController) NotFound(w http.ResponseWriter, r *http.Request) {
	pc.sendError(w, "Not found", http.StatusNotFound)
}

// MethodNotAllowed is the JSON 405 for known paths hit with the wrong method.
func (pc *PostController) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	pc.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// postID parses the {id} route variable. The route only admits digits, so a
// parse failure is an id too large for any stored post and gets the 404 built
// from absent.
func (pc *PostController) postID(w http.ResponseWriter, r *http.Request, absent string) (int, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil {
		pc.sendError(w, fmt.Sprintf(absent, raw), http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// decodeBody reads a JSON object into dst and returns how many top-level keys
// it had. Anything other than a JSON object is an error.
func (pc *PostController) decodeBody(w http.ResponseWriter, r *http.Request, dst any) (int, error) {
	if r.Body == nil {
		return 0, errors.New("missing body")
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return 0, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return 0, err
	}
	if fields == nil {
		return 0, errors.New("body is not an object")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return 0, err
	}
	return len(fields), nil
}

// writeServiceError maps service and storage errors onto status codes.
func (pc *PostController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation *services.ValidationError
		notFound   *services.NotFoundError
		storage    *repositories.StorageError
	)
	switch {
	case errors.As(err, &validation):
		pc.sendError(w, validation.Message, http.StatusBadRequest)
	case errors.As(err, &notFound):
		pc.sendError(w, notFound.Message, http.StatusNotFound)
	case errors.As(err, &storage):
		pc.logger.Error("storage failure",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("op", storage.Op),
			zap.Error(err),
		)
		pc.sendError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	default:
		pc.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		pc.sendError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// Helper methods for consistent response handling

func (pc *PostController) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		pc.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (pc *PostController) sendError(w http.ResponseWriter, message string, status int) {
	pc.sendJSON(w, status, errorResponse{Error: message})
}
