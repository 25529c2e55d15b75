package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/clock"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/config"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/events"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/signature/domain"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/storage"
)

type ServiceParam struct {
	fx.In

	Config config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Blobs  storage.BlobStore
	Outbox *events.Outbox
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	clock  clock.Clock
	blobs  storage.BlobStore
	outbox *events.Outbox
	origin string
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("signature.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		blobs:  p.Blobs,
		outbox: p.Outbox,
		origin: strings.TrimRight(p.Config.PublicOrigin, "/"),
	}
}

func (s *Service) EnsureSlotRecords(ctx context.Context, contractID snowflake.ID, refs []domain.SlotRef) error {
	now := s.clock.Now()
	for _, ref := range refs {
		slot := domain.SignatureSlot{
			ID:         s.genID.Generate(),
			ContractID: contractID,
			SlotID:     ref.SlotID,
			SignerName: ref.SignerName,
			SignerCPF:  ref.SignerCPF,
			Status:     domain.SlotPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		err := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "slot_id"}},
				DoNothing: true,
			}).
			Create(&slot).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) ListSlots(ctx context.Context, contractID snowflake.ID) ([]domain.SignatureSlot, error) {
	var slots []domain.SignatureSlot
	err := s.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("created_at, id").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *Service) GetSlot(ctx context.Context, slotID string) (*domain.SignatureSlot, error) {
	slotID = strings.TrimSpace(slotID)
	if slotID == "" {
		return nil, domain.ErrSlotNotFound
	}
	var slot domain.SignatureSlot
	if err := s.db.WithContext(ctx).First(&slot, "slot_id = ?", slotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, err
	}
	return &slot, nil
}

func (s *Service) BuildSignatureLinks(ctx context.Context, contractID snowflake.ID) ([]domain.SlotLink, error) {
	slots, err := s.ListSlots(ctx, contractID)
	if err != nil {
		return nil, err
	}
	links := make([]domain.SlotLink, 0, len(slots))
	for _, slot := range slots {
		links = append(links, domain.SlotLink{
			Slot: slot,
			URL:  fmt.Sprintf("%s/sign-block/%s/%s", s.origin, contractID.String(), slot.SlotID),
		})
	}
	return links, nil
}

func (s *Service) MarkSigned(ctx context.Context, req domain.MarkSignedRequest) (*domain.SignatureSlot, error) {
	slot, err := s.GetSlot(ctx, req.SlotID)
	if err != nil {
		return nil, err
	}
	if slot.Status == domain.SlotSigned {
		return nil, domain.ErrAlreadySigned
	}
	if len(req.ImageData) == 0 {
		return nil, domain.ErrInvalidImage
	}

	// The blob lands on disk before the row flips; a crash in between
	// leaves an orphan file, never a signed row without its image. Each
	// attempt writes to its own key, so a submission that loses the
	// pending race below cannot overwrite the recorded image.
	key := fmt.Sprintf("signatures/%s-%s", slot.SlotID, s.genID.Generate())
	imageURL, err := s.blobs.Save(ctx, key, req.ImageData, req.ContentType)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupported) || errors.Is(err, storage.ErrEmptyBlob) || errors.Is(err, storage.ErrTooLarge) {
			return nil, domain.ErrInvalidImage
		}
		return nil, err
	}

	updates := map[string]any{
		"status":     domain.SlotSigned,
		"image_url":  imageURL,
		"signed_at":  s.clock.Now(),
		"signed_ip":  strings.TrimSpace(req.RemoteAddr),
		"updated_at": s.clock.Now(),
	}
	if cpf := strings.TrimSpace(req.SignerCPF); cpf != "" {
		updates["signer_cpf"] = cpf
	}
	if name := strings.TrimSpace(req.SignerName); name != "" && slot.SignerName == "" {
		updates["signer_name"] = name
	}

	res := s.db.WithContext(ctx).
		Model(&domain.SignatureSlot{}).
		Where("slot_id = ? AND status = ?", slot.SlotID, domain.SlotPending).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Someone else signed between the read and the update.
		return nil, domain.ErrAlreadySigned
	}

	signed, err := s.GetSlot(ctx, slot.SlotID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventSlotSigned,
		Payload:   events.SlotPayload{ContractID: slot.ContractID.String(), SlotID: slot.SlotID, SignerName: signed.SignerName}.ToMap(),
		DedupeKey: "slot_signed:" + slot.SlotID,
	})

	if complete, err := s.AllSigned(ctx, slot.ContractID); err == nil && complete {
		s.publish(ctx, events.Event{
			Type:      events.EventSignaturesComplete,
			Payload:   events.SlotPayload{ContractID: slot.ContractID.String(), SlotID: slot.SlotID}.ToMap(),
			DedupeKey: "all_signed:" + slot.ContractID.String(),
		})
	}

	s.log.Info("slot signed",
		zap.String("contract_id", slot.ContractID.String()),
		zap.String("slot_id", slot.SlotID),
	)
	return signed, nil
}

func (s *Service) RemoveSignature(ctx context.Context, slotID string) error {
	slot, err := s.GetSlot(ctx, slotID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).
		Delete(&domain.SignatureSlot{}, "slot_id = ?", slot.SlotID).Error
	if err != nil {
		return err
	}

	if slot.ImageURL != "" {
		if err := s.blobs.Delete(ctx, s.blobKey(slot.ImageURL)); err != nil {
			s.log.Warn("orphaned signature image",
				zap.String("slot_id", slot.SlotID),
				zap.Error(err),
			)
		}
	}

	s.publish(ctx, events.Event{
		Type:      events.EventSlotRemoved,
		Payload:   events.SlotPayload{ContractID: slot.ContractID.String(), SlotID: slot.SlotID}.ToMap(),
		DedupeKey: "",
	})

	s.log.Info("slot removed",
		zap.String("contract_id", slot.ContractID.String()),
		zap.String("slot_id", slot.SlotID),
	)
	return nil
}

func (s *Service) AddDocument(ctx context.Context, req domain.AddDocumentRequest) (*domain.UploadedDocument, error) {
	docType := strings.ToLower(strings.TrimSpace(req.DocType))
	if docType == "" {
		return nil, domain.ErrInvalidDocType
	}

	id := s.genID.Generate()
	key := fmt.Sprintf("documents/%s/%s", req.ContractID.String(), id.String())
	fileURL, err := s.blobs.Save(ctx, key, req.Data, req.ContentType)
	if err != nil {
		return nil, err
	}

	record := &domain.UploadedDocument{
		ID:         id,
		ContractID: req.ContractID,
		DocType:    docType,
		FileURL:    fileURL,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) ListDocuments(ctx context.Context, contractID snowflake.ID) ([]domain.UploadedDocument, error) {
	var docs []domain.UploadedDocument
	err := s.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("created_at, id").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *Service) AllSigned(ctx context.Context, contractID snowflake.ID) (bool, error) {
	var total, signed int64
	tx := s.db.WithContext(ctx).Model(&domain.SignatureSlot{})
	if err := tx.Where("contract_id = ?", contractID).Count(&total).Error; err != nil {
		return false, err
	}
	if total == 0 {
		return false, nil
	}
	err := s.db.WithContext(ctx).Model(&domain.SignatureSlot{}).
		Where("contract_id = ? AND status = ?", contractID, domain.SlotSigned).
		Count(&signed).Error
	if err != nil {
		return false, err
	}
	return signed == total, nil
}

// blobKey recovers the storage key from a public file URL.
func (s *Service) blobKey(fileURL string) string {
	key := strings.TrimPrefix(fileURL, s.origin+"/files/")
	return strings.TrimSuffix(key, path.Ext(key))
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.outbox.Publish(ctx, event); err != nil {
		s.log.Warn("outbox publish failed",
			zap.String("event_type", event.Type),
			zap.Error(err),
		)
	}
}
