package room

import (
	"errors"
	"log"

	"github.com/palemoky/xi-dach/internal/apperrors"
	"github.com/palemoky/xi-dach/internal/game/xidach"
	"github.com/palemoky/xi-dach/internal/protocol"
	"github.com/palemoky/xi-dach/internal/types"
)

// roomOf 定位客户端所在房间
func (m *Manager) roomOf(client types.ClientInterface) (*Room, error) {
	roomID := client.GetRoom()
	if roomID == "" {
		return nil, apperrors.ErrNotInRoom
	}
	r := m.GetRoom(roomID)
	if r == nil {
		return nil, apperrors.ErrRoomNotFound
	}
	return r, nil
}

// StartGame 庄家发牌开局
func (m *Manager) StartGame(client types.ClientInterface) error {
	r, err := m.roomOf(client)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.Game.IsDealer(client.GetName()) {
		return apperrors.ErrNotDealer
	}

	if err := r.Game.DealInitialCards(); err != nil {
		// 牌堆中途耗尽是致命错误，本局作废，等庄家重开
		if errors.Is(err, xidach.ErrDeckExhausted) {
			log.Printf("💥 房间 %s 发牌时牌堆耗尽", r.ID)
		}
		return apperrors.FromGame(err)
	}

	r.broadcastEach(func(viewer string, state *xidach.GameState) *protocol.Message {
		return protocol.MustNewMessage(protocol.MsgGameStarted, protocol.GameStatePayload{
			GameState: state,
		})
	})

	m.saveSnapshot(r)

	log.Printf("🎴 房间 %s 开局，%d 个闲家", r.ID, r.Game.PlayerCount())
	return nil
}

// DrawCard 当前回合的参与者补一张牌
func (m *Manager) DrawCard(client types.ClientInterface) error {
	r, err := m.roomOf(client)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := client.GetName()
	if r.Game.CurrentTurn() != name {
		return apperrors.ErrNotYourTurn
	}

	result, err := r.Game.DrawCard(name)
	if err != nil {
		return apperrors.FromGame(err)
	}

	r.broadcastEach(func(viewer string, state *xidach.GameState) *protocol.Message {
		return protocol.MustNewMessage(protocol.MsgCardDrawn, protocol.CardDrawnPayload{
			PlayerID:  name,
			Card:      result.Card,
			Status:    result.Status,
			HandValue: result.HandValue,
			GameState: state,
		})
	})
	return nil
}

// Stand 当前回合的参与者停牌
func (m *Manager) Stand(client types.ClientInterface) error {
	r, err := m.roomOf(client)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := client.GetName()
	if r.Game.CurrentTurn() != name {
		return apperrors.ErrNotYourTurn
	}

	if err := r.Game.Stand(name); err != nil {
		return apperrors.FromGame(err)
	}

	r.broadcastEach(func(viewer string, state *xidach.GameState) *protocol.Message {
		return protocol.MustNewMessage(protocol.MsgPlayerStood, protocol.PlayerStoodPayload{
			PlayerID:  name,
			GameState: state,
		})
	})
	return nil
}

// CompareHands 庄家对指定闲家开牌
func (m *Manager) CompareHands(client types.ClientInterface, targetPlayerID string) error {
	r, err := m.roomOf(client)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := client.GetName()
	outcome, err := r.Game.CompareHands(name, targetPlayerID)
	if err != nil {
		return apperrors.FromGame(err)
	}

	r.broadcastEach(func(viewer string, state *xidach.GameState) *protocol.Message {
		return protocol.MustNewMessage(protocol.MsgHandsCompared, protocol.HandsComparedPayload{
			DealerID:  name,
			PlayerID:  targetPlayerID,
			Result:    outcome,
			GameState: state,
		})
	})
	return nil
}

// RestartGame 庄家重开一局，仅 finished 状态下允许
func (m *Manager) RestartGame(client types.ClientInterface) error {
	r, err := m.roomOf(client)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.Game.IsDealer(client.GetName()) {
		return apperrors.ErrNotDealer
	}
	if r.Game.State() != xidach.StateFinished {
		return apperrors.ErrGameNotFinished
	}

	r.Game.Restart()

	r.broadcastEach(func(viewer string, state *xidach.GameState) *protocol.Message {
		return protocol.MustNewMessage(protocol.MsgGameRestarted, protocol.GameStatePayload{
			GameState: state,
		})
	})

	m.saveSnapshot(r)

	log.Printf("🔄 房间 %s 重开一局", r.ID)
	return nil
}
