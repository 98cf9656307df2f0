package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmorales/restroom-app/models"
	"github.com/dmorales/restroom-app/utils"
	"gorm.io/gorm"
)

// Sentinel errors let the controller map failures onto the right HTTP codes.
var (
	ErrIncidentNotFound  = errors.New("incident not found")
	ErrAssigneeNotFound  = errors.New("assigned user not found")
	ErrAssigneeNotStaff  = errors.New("assigned user must be cleaning staff")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrStatusConflict    = errors.New("incident status changed concurrently")
	ErrBathroomNotFound  = errors.New("bathroom not found")
)

// IncidentService owns the incident lifecycle:
//
//	pending -> in_progress (assign) -> resolved
//
// Assignment may repeat while in_progress (hand-off to another cleaner).
// Resolution requires a prior assignment and is terminal.
type IncidentService struct {
	db *gorm.DB
}

func NewIncidentService(db *gorm.DB) *IncidentService {
	return &IncidentService{db: db}
}

// Report creates a new incident in the pending state. The bathroom must
// exist; priority falls back to medium when empty.
func (s *IncidentService) Report(incident *models.Incident) error {
	var bathroom models.Bathroom
	if err := s.db.First(&bathroom, incident.BathroomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBathroomNotFound
		}
		return err
	}

	incident.Status = models.IncidentPending
	incident.AssignedToID = nil
	incident.ResolvedAt = nil
	if incident.Priority == "" {
		incident.Priority = models.PriorityMedium
	}
	if !models.ValidPriority(incident.Priority) {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidTransition, incident.Priority)
	}

	return s.db.Create(incident).Error
}

// Assign moves a pending incident to in_progress, or re-points an
// in_progress incident at another cleaner. The target must be an existing
// cleaning_staff user. The status update is conditional on the current
// status so two admins racing on the same incident cannot both win.
func (s *IncidentService) Assign(incidentID, assigneeID uint) (*models.Incident, error) {
	var assignee models.User
	if err := s.db.First(&assignee, assigneeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, err
	}
	if assignee.Role != models.RoleCleaningStaff {
		return nil, ErrAssigneeNotStaff
	}

	incident, err := s.Get(incidentID)
	if err != nil {
		return nil, err
	}
	if incident.Status == models.IncidentResolved {
		return nil, fmt.Errorf("%w: incident already resolved", ErrInvalidTransition)
	}

	if incident.Status == models.IncidentPending {
		// Conditional update: the first assignment only lands if the
		// incident is still pending. A concurrent resolve or assign that
		// got there first turns this into a conflict instead of a silent
		// overwrite.
		res := s.db.Model(&models.Incident{}).
			Where("id = ? AND status = ?", incidentID, models.IncidentPending).
			Updates(map[string]interface{}{
				"status":         models.IncidentInProgress,
				"assigned_to_id": assigneeID,
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrStatusConflict
		}
	} else {
		// Re-assignment of an in_progress incident is a plain hand-off.
		res := s.db.Model(&models.Incident{}).
			Where("id = ?", incidentID).
			Update("assigned_to_id", assigneeID)
		if res.Error != nil {
			return nil, res.Error
		}
	}

	s.notify(assigneeID, "Incidente asignado",
		fmt.Sprintf("Se te ha asignado el incidente #%d: %s", incident.ID, incident.Title))

	return s.Get(incidentID)
}

// Resolve moves an in_progress incident to resolved, stamping resolved_at
// and keeping the assignee for the record.
func (s *IncidentService) Resolve(incidentID uint) (*models.Incident, error) {
	incident, err := s.Get(incidentID)
	if err != nil {
		return nil, err
	}
	if incident.Status != models.IncidentInProgress {
		return nil, fmt.Errorf("%w: only in_progress incidents can be resolved", ErrInvalidTransition)
	}

	now := time.Now()
	res := s.db.Model(&models.Incident{}).
		Where("id = ? AND status = ?", incidentID, models.IncidentInProgress).
		Updates(map[string]interface{}{
			"status":      models.IncidentResolved,
			"resolved_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrStatusConflict
	}

	s.notify(incident.ReportedByID, "Incidente resuelto",
		fmt.Sprintf("El incidente #%d (%s) ha sido resuelto", incident.ID, incident.Title))

	return s.Get(incidentID)
}

// Get loads one incident with its relations.
func (s *IncidentService) Get(incidentID uint) (*models.Incident, error) {
	var incident models.Incident
	err := s.db.Preload("Bathroom").Preload("Bathroom.Floor").
		Preload("ReportedBy").Preload("AssignedTo").
		First(&incident, incidentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIncidentNotFound
		}
		return nil, err
	}
	return &incident, nil
}

// notify records an in-app notification. A failure here must not fail the
// transition that triggered it.
func (s *IncidentService) notify(userID uint, title, message string) {
	n := models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
	}
	if err := s.db.Create(&n).Error; err != nil && utils.ErrorLogger != nil {
		utils.ErrorLogger.Printf("Failed to write notification for user %d: %v", userID, err)
	}
}
