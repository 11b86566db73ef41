package service

import (
	"encoding/json"
	"fmt"
	"time"

	"alkhaled/internal/model"
	"alkhaled/internal/store"
	ws "alkhaled/internal/websocket"
)

// requiredKeys must be present at the top level of an imported file.
var requiredKeys = []string{"products", "customers", "suppliers", "invoices", "settings"}

// --- Interface ---

type BackupService interface {
	Export() (filename string, data []byte, err error)
	Import(data []byte) error
}

type backupService struct {
	ctrl *store.Controller
	hub  *ws.Hub
}

func NewBackupService(ctrl *store.Controller, hub *ws.Hub) BackupService {
	return &backupService{ctrl: ctrl, hub: hub}
}

// --- Implementation ---

// Export serializes the persisted subset of the dataset, pretty printed,
// with the backup filename the UI should save it under.
func (s *backupService) Export() (string, []byte, error) {
	data, err := s.ctrl.EncodePersisted()
	if err != nil {
		return "", nil, err
	}
	filename := fmt.Sprintf("alkhaled-backup-%s.json", time.Now().Format("2006-01-02"))
	return filename, data, nil
}

// Import validates the required top-level keys and replaces the whole
// dataset. On rejection the current dataset is untouched.
func (s *backupService) Import(data []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	for _, key := range requiredKeys {
		if _, ok := keys[key]; !ok {
			return fmt.Errorf("%w: missing key %q", ErrInvalidDocument, key)
		}
	}

	// Merge over defaults so keys absent from older backups get filled in.
	doc := model.DefaultDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if err := s.ctrl.Replace(doc); err != nil {
		return err
	}
	s.ctrl.Update(func(d *model.Document) error {
		pushToast(d, s.hub, "تم استيراد البيانات بنجاح", model.ToastSuccess)
		return nil
	})
	return nil
}
