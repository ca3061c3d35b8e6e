package usecase_room

import (
	"context"
	"errors"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/reelmatch/core/internal/model"
)

var (
	ErrCodeConflict      = errors.New("code conflict")
	ErrRoomsUnavailable  = errors.New("no available rooms")
	ErrInternal          = errors.New("internal error")
	ErrResourceNotFound  = errors.New("no such resource")
	ErrNotHost           = errors.New("operation allowed for the host only")
	ErrInvalidTransition = errors.New("invalid room status transition")
)

//go:generate mockery --name=RoomRepository --output=./mocks/room/repository --filename=repository.go
type RoomRepository interface {
	CreateAndBook(ctx context.Context, room model.Room, hostID uuid.UUID) error
	RoomByCode(ctx context.Context, code string) (model.Room, error)
	DeleteByCode(ctx context.Context, code string) error

	// TransitionStatus applies from→to conditionally and reports whether
	// this call won the transition.
	TransitionStatus(ctx context.Context, roomID uuid.UUID, from, to model.RoomStatus) (bool, error)

	// ResetRoom returns the room to WAITING and clears its matched item,
	// tallies and dedup markers.
	ResetRoom(ctx context.Context, roomID uuid.UUID) error

	UpsertMember(ctx context.Context, roomID uuid.UUID, userID uuid.UUID, role model.MemberRole) error
	SetMemberActive(ctx context.Context, roomID uuid.UUID, userID uuid.UUID, active bool) error
	SetMemberRole(ctx context.Context, roomID uuid.UUID, userID uuid.UUID, role model.MemberRole) error

	// TransferHost moves host authority to an active member in one
	// transaction: rooms.host_id plus both member roles.
	TransferHost(ctx context.Context, roomID uuid.UUID, from uuid.UUID, to uuid.UUID) error

	ActiveMemberCount(ctx context.Context, roomID uuid.UUID) (int, error)
	IsActiveMember(ctx context.Context, roomID uuid.UUID, userID uuid.UUID) (bool, error)

	UpdateFilter(ctx context.Context, roomID uuid.UUID, filter model.ContentFilter) error
}

//go:generate mockery --name=CodeReserver --output=./mocks/room/reserver --filename=reserver.go
type CodeReserver interface {
	Reserve(ctx context.Context, code string) (bool, error)
	Release(ctx context.Context, code string) error
}

type Usecase struct {
	RoomRepository RoomRepository
	CodeReserver   CodeReserver
}

func New(RoomRepository RoomRepository, CodeReserver CodeReserver) *Usecase {
	return &Usecase{
		RoomRepository: RoomRepository,
		CodeReserver:   CodeReserver,
	}
}

// Host token must be set on a client in order to do 'host ops'.
func (u *Usecase) Create(ctx context.Context) (roomCode string, hostToken string, err error) {
	hostID := uuid.New()

	roomCode, err = u.createRoomLobby(ctx, hostID)
	if err != nil {
		return "", "", err
	}
	return roomCode, hostID.String(), nil
}

// Assuming that codes can conflict.
// Retrying...
func (u *Usecase) createRoomLobby(ctx context.Context, hostID uuid.UUID) (string, error) {
	var retries = 3
	for retries > 0 {
		code := u.buildRoomCode()

		// Fast conflict check. Redis being down is not a reason to refuse
		// a room, the unique constraint still catches real conflicts.
		if free, err := u.CodeReserver.Reserve(ctx, code); err == nil && !free {
			retries--
			continue
		}

		if err := u.RoomRepository.CreateAndBook(ctx, model.Room{
			ID:         uuid.New(),
			PublicCode: code,
			HostID:     hostID,
			Status:     model.StatusWaiting,
		}, hostID); err != nil {
			_ = u.CodeReserver.Release(ctx, code)
			if errors.Is(err, ErrCodeConflict) {
				retries--
			} else {
				return "", errors.Join(ErrInternal, err)
			}
		} else {
			return code, nil
		}
	}
	return "", ErrRoomsUnavailable
}

func (u *Usecase) buildRoomCode() string {
	const codeLen = 6
	var builder strings.Builder
	builder.Grow(codeLen)

	for i := 0; i < codeLen; i++ {
		builder.WriteByte(byte(rand.Intn(10)) + '0')
	}

	return builder.String()
}

func (u *Usecase) RoomByCode(ctx context.Context, code string) (model.Room, error) {
	room, err := u.RoomRepository.RoomByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.Room{}, ErrResourceNotFound
		}
		return model.Room{}, errors.Join(ErrInternal, err)
	}
	return room, nil
}

func (u *Usecase) Status(ctx context.Context, code string) (model.RoomStatus, error) {
	room, err := u.RoomByCode(ctx, code)
	if err != nil {
		return "", err
	}
	return room.Status, nil
}

// Join activates a membership. Incoming userID == nil ~ a fresh participant.
// Returns the member id and the new active count (the consensus denominator).
func (u *Usecase) Join(ctx context.Context, code string, userID *string) (string, int, error) {
	room, err := u.RoomByCode(ctx, code)
	if err != nil {
		return "", 0, err
	}

	var userUUID uuid.UUID
	if userID == nil {
		userUUID = uuid.New()
	} else {
		userUUID, err = uuid.Parse(*userID)
		if err != nil {
			return "", 0, errors.Join(ErrInternal, err)
		}
	}

	role := model.RoleMember
	if userUUID == room.HostID {
		role = model.RoleHost
	}

	if err := u.RoomRepository.UpsertMember(ctx, room.ID, userUUID, role); err != nil {
		return "", 0, errors.Join(ErrInternal, err)
	}

	count, err := u.RoomRepository.ActiveMemberCount(ctx, room.ID)
	if err != nil {
		return "", 0, errors.Join(ErrInternal, err)
	}

	return userUUID.String(), count, nil
}

// Leave deactivates a membership. Past match decisions stay untouched;
// only future denominators shrink.
func (u *Usecase) Leave(ctx context.Context, code string, userID string) (int, error) {
	room, err := u.RoomByCode(ctx, code)
	if err != nil {
		return 0, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return 0, errors.Join(ErrInternal, err)
	}

	if err := u.RoomRepository.SetMemberActive(ctx, room.ID, userUUID, false); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return 0, ErrResourceNotFound
		}
		return 0, errors.Join(ErrInternal, err)
	}

	count, err := u.RoomRepository.ActiveMemberCount(ctx, room.ID)
	if err != nil {
		return 0, errors.Join(ErrInternal, err)
	}

	return count, nil
}

// Start moves WAITING → ACTIVE. Host only.
func (u *Usecase) Start(ctx context.Context, code string, actorID string) error {
	room, err := u.requireHost(ctx, code, actorID)
	if err != nil {
		return err
	}

	ok, err := u.RoomRepository.TransitionStatus(ctx, room.ID, model.StatusWaiting, model.StatusActive)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}
	if !ok {
		return ErrInvalidTransition
	}
	return nil
}

// Reset is the only way back: any status → WAITING, all tallies cleared.
func (u *Usecase) Reset(ctx context.Context, code string, actorID string) error {
	room, err := u.requireHost(ctx, code, actorID)
	if err != nil {
		return err
	}

	if err := u.RoomRepository.ResetRoom(ctx, room.ID); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// AssignRole hands HOST over; the previous host becomes a plain member.
// Host authority lives in rooms.host_id, so a handover moves that too,
// otherwise the old host would keep passing every host check.
func (u *Usecase) AssignRole(ctx context.Context, code string, actorID string, targetID string, role model.MemberRole) error {
	room, err := u.requireHost(ctx, code, actorID)
	if err != nil {
		return err
	}

	targetUUID, err := uuid.Parse(targetID)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}

	if role == model.RoleHost {
		if targetUUID == room.HostID {
			return nil
		}
		if err := u.RoomRepository.TransferHost(ctx, room.ID, room.HostID, targetUUID); err != nil {
			if errors.Is(err, ErrResourceNotFound) {
				return ErrResourceNotFound
			}
			return errors.Join(ErrInternal, err)
		}
		return nil
	}

	// The only way out of HOST is a handover.
	if targetUUID == room.HostID {
		return ErrInvalidTransition
	}

	if err := u.RoomRepository.SetMemberRole(ctx, room.ID, targetUUID, role); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// Kick deactivates the target member. Host only.
func (u *Usecase) Kick(ctx context.Context, code string, actorID string, targetID string) (int, error) {
	room, err := u.requireHost(ctx, code, actorID)
	if err != nil {
		return 0, err
	}

	targetUUID, err := uuid.Parse(targetID)
	if err != nil {
		return 0, errors.Join(ErrInternal, err)
	}

	if err := u.RoomRepository.SetMemberActive(ctx, room.ID, targetUUID, false); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return 0, ErrResourceNotFound
		}
		return 0, errors.Join(ErrInternal, err)
	}

	count, err := u.RoomRepository.ActiveMemberCount(ctx, room.ID)
	if err != nil {
		return 0, errors.Join(ErrInternal, err)
	}
	return count, nil
}

func (u *Usecase) UpdateSettings(ctx context.Context, code string, actorID string, filter model.ContentFilter) error {
	room, err := u.requireHost(ctx, code, actorID)
	if err != nil {
		return err
	}

	if err := u.RoomRepository.UpdateFilter(ctx, room.ID, filter); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func (u *Usecase) IsHost(ctx context.Context, code string, userID string) (bool, error) {
	room, err := u.RoomByCode(ctx, code)
	if err != nil {
		return false, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return false, errors.Join(ErrInternal, err)
	}

	return room.HostID == userUUID, nil
}

func (u *Usecase) IsParticipant(ctx context.Context, code string, userID string) (bool, error) {
	room, err := u.RoomByCode(ctx, code)
	if err != nil {
		return false, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return false, errors.Join(ErrInternal, err)
	}

	return u.RoomRepository.IsActiveMember(ctx, room.ID, userUUID)
}

func (u *Usecase) ParticipantsCount(ctx context.Context, code string) (int, error) {
	room, err := u.RoomByCode(ctx, code)
	if err != nil {
		return 0, err
	}
	return u.RoomRepository.ActiveMemberCount(ctx, room.ID)
}

func (u *Usecase) Free(ctx context.Context, code string) error {
	if err := u.RoomRepository.DeleteByCode(ctx, code); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	_ = u.CodeReserver.Release(ctx, code)
	return nil
}

func (u *Usecase) requireHost(ctx context.Context, code string, actorID string) (model.Room, error) {
	room, err := u.RoomByCode(ctx, code)
	if err != nil {
		return model.Room{}, err
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return model.Room{}, errors.Join(ErrInternal, err)
	}

	if room.HostID != actorUUID {
		return model.Room{}, ErrNotHost
	}
	return room, nil
}
