package handlers

import (
	"context"
	"net/http"
	"time"

	intconfig "khanza/internal/config"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "backend khanza berjalan"})
}

func (h Handler) DBCheck(c *gin.Context) {
	db := h.DB
	if db == nil {
		db = intconfig.DB
	}
	if db == nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database belum terhubung", nil)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "gagal query ke database", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "koneksi database OK", "users_in_db": count})
}
