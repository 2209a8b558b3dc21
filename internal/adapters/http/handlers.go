package routes

import (
	"net/http"

	"github.com/just-nibble/commit-view/internal/adapters/http/handlers"
	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRouter(commits *handlers.CommitHandler) *http.ServeMux {
	router := http.NewServeMux()
	router.HandleFunc("GET /repos/{owner}/{name}/commits/{sha}", commits.GetCommitView)
	router.HandleFunc("GET /repos/{owner}/{name}/commits/{sha}/files/{kind}", commits.GetCommitFiles)
	// Serve Swagger documentation
	router.HandleFunc("/swagger/", httpSwagger.WrapHandler)
	return router
}
