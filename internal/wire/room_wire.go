package wire

import (
	"cinema-manager/internal/adaptor"
	"cinema-manager/pkg/middleware"
	"cinema-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRoom(
	r chi.Router,
	roomHandler *adaptor.RoomHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Get("/api/rooms", roomHandler.GetRooms)
	r.Get("/api/rooms/{id}", roomHandler.GetRoomByID)
	r.Get("/api/rooms/{id}/seats", roomHandler.GetRoomSeats)

	r.Route("/api/admin/rooms", func(r chi.Router) {
		r.Use(middleware.Admin(config.Admin.APIKey, log))

		r.Post("/", roomHandler.CreateRoom)
		r.Put("/{id}", roomHandler.UpdateRoom)
		r.Delete("/{id}", roomHandler.DeleteRoom)
		r.Post("/{id}/seats/generate", roomHandler.GenerateSeats)
	})
}
