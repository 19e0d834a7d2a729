package handlers

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zatekoja/unitycure/backend/internal/application/services"
	"github.com/zatekoja/unitycure/backend/internal/domain/providers"
)

// BackupService defines the snapshot operations used by the handler
type BackupService interface {
	Backup(ctx context.Context, source providers.RowSource) (*services.BackupReport, error)
	BackupLegacy(ctx context.Context, path string) (*services.BackupReport, error)
}

// RestoreService defines the restore operation used by the handler
type RestoreService interface {
	Restore(ctx context.Context, path string) (*services.RestoreReport, error)
}

// AdminHandler exposes backup and restore of the live store
type AdminHandler struct {
	backups    BackupService
	restorer   RestoreService
	live       providers.RowSource
	legacyPath string
	backupDir  string
	afterWrite []func(ctx context.Context) error
	logger     zerolog.Logger
}

// NewAdminHandler creates a new admin handler. Restores only read files
// inside backupDir. afterWrite hooks run after a restore, typically to drop
// cached reads.
func NewAdminHandler(
	backups BackupService,
	restorer RestoreService,
	live providers.RowSource,
	legacyPath, backupDir string,
	logger zerolog.Logger,
	afterWrite ...func(ctx context.Context) error,
) *AdminHandler {
	return &AdminHandler{
		backups:    backups,
		restorer:   restorer,
		live:       live,
		legacyPath: legacyPath,
		backupDir:  backupDir,
		afterWrite: afterWrite,
		logger:     logger,
	}
}

// Backup handles POST /api/admin/backup?source=live|legacy
func (h *AdminHandler) Backup(w http.ResponseWriter, r *http.Request) {
	var (
		report *services.BackupReport
		err    error
	)
	switch r.URL.Query().Get("source") {
	case "", "live":
		report, err = h.backups.Backup(r.Context(), h.live)
	case "legacy":
		report, err = h.backups.BackupLegacy(r.Context(), h.legacyPath)
	default:
		respondWithError(w, http.StatusBadRequest, "source must be live or legacy")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("backup failed")
		respondWithAppError(w, err, "backup failed")
		return
	}
	respondOK(w, map[string]interface{}{"backup": report})
}

type restoreRequest struct {
	File string `json:"file"`
}

// Restore handles POST /api/admin/restore
func (h *AdminHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req restoreRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	name := filepath.Base(strings.TrimSpace(req.File))
	if name == "." || name == string(filepath.Separator) || !strings.HasSuffix(name, ".json") {
		respondWithError(w, http.StatusBadRequest, "file must name a .json backup")
		return
	}

	report, err := h.restorer.Restore(r.Context(), filepath.Join(h.backupDir, name))
	if err != nil {
		h.logger.Error().Err(err).Str("file", name).Msg("restore failed")
		respondWithAppError(w, err, "restore failed")
		return
	}
	for _, hook := range h.afterWrite {
		if err := hook(r.Context()); err != nil {
			h.logger.Warn().Err(err).Msg("post-restore hook failed")
		}
	}

	status := http.StatusOK
	if !report.OK() {
		status = http.StatusInternalServerError
	}
	respondWithJSON(w, status, map[string]interface{}{
		"ok":      report.OK(),
		"restore": report,
	})
}
