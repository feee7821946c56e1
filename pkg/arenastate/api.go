package arenastate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type modeResponse struct {
	Mode    string `json:"mode"`
	ChainId uint64 `json:"chainId"`
	Arena   string `json:"arena,omitempty"`
}

func (s *State) generateRouter() *gin.Engine {
	router := gin.Default()

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	router.GET("/mode", func(c *gin.Context) {
		resp := modeResponse{
			Mode:    s.Mode().String(),
			ChainId: s.conn.ChainID.Uint64(),
		}
		if arena, err := s.LocateArena(c.Request.Context()); err == nil {
			resp.Arena = arena.Hex()
		}
		c.JSON(http.StatusOK, resp)
	})

	router.GET("/env", func(c *gin.Context) {
		c.String(http.StatusOK, s.Env())
	})

	router.GET("/address/:role", func(c *gin.Context) {
		address, ok := s.Address(c.Param("role"))
		if !ok {
			c.String(http.StatusNotFound, "no key for role "+c.Param("role"))
			return
		}
		c.String(http.StatusOK, address.String())
	})

	router.GET("/quote", func(c *gin.Context) {
		quote, err := s.Quote(c.Request.Context())
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}

		c.JSON(http.StatusOK, quote)
	})

	return router
}

func (s *State) GetRouter() *gin.Engine {
	return s.apiRouter
}

func (s *State) StartServer(ctx context.Context) error {
	slog.Info("starting server", "mode", s.Mode().String(), "port", s.apiIpPort)

	if s.apiIpPort == "" {
		slog.Info("api ip port is empty, skipping server")
		return nil
	}

	server := &http.Server{
		Addr:    s.apiIpPort,
		Handler: s.apiRouter,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		if err := server.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	return nil
}
