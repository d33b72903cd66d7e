package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/roomcast/roomcast/internal/core"
	"github.com/roomcast/roomcast/internal/domain"
)

func (ctl *ChatWSController) handleEnterRoom(
	id core.ConnID,
	conn *WsSignalConn,
	data []byte,
) {
	type enterPayload struct {
		Type string `json:"type"`
		Name string `json:"name"`
		Room string `json:"room"`
	}
	var p enterPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad enterRoom payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	if err := domain.ValidName(p.Name); err != nil {
		ctl.sendError(conn, err.Error())
		return
	}
	if err := domain.ValidRoom(p.Room); err != nil {
		ctl.sendError(conn, err.Error())
		return
	}

	log.Info().Str("module", "signal").Str("conn", string(id)).Str("name", p.Name).Str("room", p.Room).Msg("enterRoom")
	ctl.Coord.OnEnterRoom(id, p.Name, domain.RoomName(p.Room))
}

func (ctl *ChatWSController) handleMessage(
	id core.ConnID,
	conn *WsSignalConn,
	data []byte,
) {
	type messagePayload struct {
		Type string `json:"type"`
		Name string `json:"name"`
		Text string `json:"text"`
	}
	var p messagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad message payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	ctl.Coord.OnMessage(id, p.Name, p.Text)
}

func (ctl *ChatWSController) handleActivity(
	id core.ConnID,
	conn *WsSignalConn,
	data []byte,
) {
	type activityPayload struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}
	var p activityPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad activity payload")
		return
	}
	ctl.Coord.OnActivity(id, p.Name)
}
