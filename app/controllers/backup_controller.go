package controllers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"homebase/app/services"
)

// BackupController handles HTTP requests for backups.
type BackupController struct {
	backups *services.BackupService
}

// NewBackupController creates a BackupController on top of backups.
func NewBackupController(backups *services.BackupService) *BackupController {
	return &BackupController{backups: backups}
}

// List handles GET /api/backups.
func (bc *BackupController) List(w http.ResponseWriter, r *http.Request) {
	records, err := bc.backups.ListBackups(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("listing backups")
		sendError(w, http.StatusInternalServerError, "Failed to list backups")
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"backups": records})
}

// Trigger handles POST /api/backup. The snapshot runs synchronously within
// the request.
func (bc *BackupController) Trigger(w http.ResponseWriter, r *http.Request) {
	record, err := bc.backups.Run(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("running backup")
		sendError(w, http.StatusInternalServerError, "Failed to create backup")
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"backup": record})
}
