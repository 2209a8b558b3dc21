package handlers

import (
	"errors"
	"net/http"

	"github.com/just-nibble/commit-view/internal/adapters/api"
	"github.com/just-nibble/commit-view/internal/adapters/validators"
	"github.com/just-nibble/commit-view/internal/core/domain/entities"
	"github.com/just-nibble/commit-view/internal/core/service"
	"github.com/just-nibble/commit-view/internal/logger"
	"github.com/just-nibble/commit-view/internal/usecases"
	"github.com/just-nibble/commit-view/pkg/response"
)

type CommitHandler struct {
	commitViewUseCase usecases.CommitViewUsecase
	log               *logger.Logger
}

func NewCommitHandler(commitViewUseCase usecases.CommitViewUsecase, log *logger.Logger) *CommitHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &CommitHandler{commitViewUseCase: commitViewUseCase, log: log}
}

// optionalQuery returns a pointer to the query value when the parameter is present at all
func optionalQuery(r *http.Request, name string) *string {
	q := r.URL.Query()
	if !q.Has(name) {
		return nil
	}
	v := q.Get(name)
	return &v
}

func commitKey(r *http.Request) (entities.CommitKey, error) {
	return validators.CommitKey(r.PathValue("owner"), r.PathValue("name"), r.PathValue("sha"))
}

// GetCommitView godoc
// @Summary      Show one commit
// @Description  Derives the display-ready view of a commit. author/committer, when present, override the logins in the payload.
// @Produce      json
// @Param        owner      path   string  true   "Repository owner"
// @Param        name       path   string  true   "Repository name"
// @Param        sha        path   string  true   "Commit SHA"
// @Param        author     query  string  false  "Known author login"
// @Param        committer  query  string  false  "Known committer login"
// @Param        refresh    query  bool    false  "Ignore the stored snapshot"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.Envelope
// @Failure      502  {object}  response.Envelope
// @Router       /repos/{owner}/{name}/commits/{sha} [get]
func (h *CommitHandler) GetCommitView(w http.ResponseWriter, r *http.Request) {
	key, err := commitKey(r)
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	req := usecases.CommitViewRequest{
		Key: key,
		Known: entities.KnownLogins{
			Author:    optionalQuery(r, "author"),
			Committer: optionalQuery(r, "committer"),
		},
		Refresh: r.URL.Query().Get("refresh") == "true",
	}

	view, err := h.commitViewUseCase.GetCommitView(r.Context(), req)
	if err != nil {
		h.writeError(w, key, err)
		return
	}

	response.SuccessResponse(w, http.StatusOK, view)
}

// GetCommitFiles godoc
// @Summary      List changed files of one kind
// @Produce      json
// @Param        owner  path  string  true  "Repository owner"
// @Param        name   path  string  true  "Repository name"
// @Param        sha    path  string  true  "Commit SHA"
// @Param        kind   path  string  true  "added, removed or modified"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.Envelope
// @Router       /repos/{owner}/{name}/commits/{sha}/files/{kind} [get]
func (h *CommitHandler) GetCommitFiles(w http.ResponseWriter, r *http.Request) {
	key, err := commitKey(r)
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	files, err := h.commitViewUseCase.GetCommitFiles(r.Context(), key, entities.FileKind(r.PathValue("kind")))
	if err != nil {
		h.writeError(w, key, err)
		return
	}

	response.SuccessResponse(w, http.StatusOK, files)
}

func (h *CommitHandler) writeError(w http.ResponseWriter, key entities.CommitKey, err error) {
	switch {
	case errors.Is(err, usecases.ErrUnknownFileKind):
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, api.ErrFetchFailed):
		h.log.With("commit", key.String()).Warn("commit fetch failed", err)
		response.ErrorResponse(w, http.StatusBadGateway, "Failed to fetch commit")
	case errors.Is(err, service.ErrInvalidPayload):
		response.ErrorResponse(w, http.StatusUnprocessableEntity, "Commit payload is not a JSON object")
	default:
		h.log.With("commit", key.String()).Error("failed to build commit view", err)
		response.ErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve commit")
	}
}
