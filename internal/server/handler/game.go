package handler

import (
	"github.com/palemoky/xi-dach/internal/protocol"
	"github.com/palemoky/xi-dach/internal/types"
)

// handleStartGame 庄家发牌开局
func (h *Handler) handleStartGame(client types.ClientInterface) {
	if err := h.roomManager.StartGame(client); err != nil {
		sendError(client, err)
		return
	}
	h.server.BroadcastRoomList()
}

// handleDrawCard 当前回合的人抽一张牌
func (h *Handler) handleDrawCard(client types.ClientInterface) {
	if err := h.roomManager.DrawCard(client); err != nil {
		sendError(client, err)
	}
}

// handleStand 当前回合的人停牌
func (h *Handler) handleStand(client types.ClientInterface) {
	if err := h.roomManager.Stand(client); err != nil {
		sendError(client, err)
	}
}

// handleCompareHands 庄家与指定玩家开牌比点
func (h *Handler) handleCompareHands(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.CompareHandsPayload](msg)
	if err != nil || payload.TargetPlayerID == "" {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if err := h.roomManager.CompareHands(client, payload.TargetPlayerID); err != nil {
		sendError(client, err)
	}
}

// handleRestartGame 庄家重开一局
func (h *Handler) handleRestartGame(client types.ClientInterface) {
	if err := h.roomManager.RestartGame(client); err != nil {
		sendError(client, err)
		return
	}
	h.server.BroadcastRoomList()
}
