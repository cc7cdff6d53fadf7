package handler

import (
	"net/http"

	"github.com/osse101/Tycoon_Go/internal/domain"
	"github.com/osse101/Tycoon_Go/internal/logger"
)

// InputSink receives movement input for the next tick
type InputSink interface {
	Set(in domain.InputSnapshot)
}

// MovementRequest is a movement vector with each component in [-1, 1]
type MovementRequest struct {
	X float64 `json:"x" validate:"gte=-1,lte=1"`
	Y float64 `json:"y" validate:"gte=-1,lte=1"`
	Z float64 `json:"z" validate:"gte=-1,lte=1"`
}

// InputRequest is the body of POST /api/v1/input
type InputRequest struct {
	Movement MovementRequest `json:"movement"`
	Yaw      float64         `json:"yaw" validate:"gte=-6.2832,lte=6.2832"`
}

// HandleInput latches the posted input for the tick loop
func HandleInput(sink InputSink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req InputRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Input"); err != nil {
			return
		}

		in := domain.InputSnapshot{
			Movement: domain.Vec3{X: req.Movement.X, Y: req.Movement.Y, Z: req.Movement.Z},
			Yaw:      req.Yaw,
		}
		sink.Set(in)
		logger.FromContext(r.Context()).Debug(LogMsgInputAccepted, "movement", in.Movement, "yaw", in.Yaw)

		respondJSON(w, http.StatusAccepted, in)
	}
}
