package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"evalboard/internal/delivery/http/controllers"
	"evalboard/internal/delivery/http/middleware"
	"evalboard/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	authController *controllers.AuthController,
	datasetController *controllers.DatasetController,
	splitController *controllers.SplitController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Datasets
	mux.HandleFunc("POST /datasets", auth(datasetController.CreateDataset))
	mux.HandleFunc("GET /datasets", auth(datasetController.ListDatasets))
	mux.HandleFunc("GET /datasets/{datasetID}", auth(datasetController.GetDataset))
	mux.HandleFunc("DELETE /datasets/{datasetID}", auth(datasetController.DeleteDataset))
	mux.HandleFunc("GET /datasets/{datasetID}/examples", auth(datasetController.ListExamples))
	mux.HandleFunc("POST /datasets/{datasetID}/import", auth(datasetController.ImportExamples))

	// Splits
	mux.HandleFunc("GET /datasets/{datasetID}/splits", auth(splitController.ListSplits))
	mux.HandleFunc("POST /datasets/{datasetID}/splits", auth(splitController.CreateSplit))
	mux.HandleFunc("PATCH /datasets/{datasetID}/splits/{splitID}", auth(splitController.RenameSplit))
	mux.HandleFunc("DELETE /datasets/{datasetID}/splits/{splitID}", auth(splitController.DeleteSplit))
	mux.HandleFunc("POST /datasets/{datasetID}/splits/statuses", auth(splitController.SplitStatuses))
	mux.HandleFunc("POST /datasets/{datasetID}/splits/{splitID}/toggle", auth(splitController.ToggleSplit))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
