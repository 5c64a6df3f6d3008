package workflow

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mmynk/billease/internal/models"
)

func (s *Session) isParticipant(name string) bool {
	return slices.Contains(s.bill.Participants, name)
}

func normalizeNames(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, ErrEmptyName
		}
		if slices.Contains(out, name) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, name)
		}
		out = append(out, name)
	}
	return out, nil
}

// AddParticipant appends a participant. Names are trimmed and must be unique.
func (s *Session) AddParticipant(name string) error {
	if err := s.require("add participant", models.StateAddingPeople); err != nil {
		return err
	}
	names, err := normalizeNames(append(slices.Clone(s.bill.Participants), name))
	if err != nil {
		return err
	}
	s.bill.Participants = names
	return nil
}

// SetParticipants replaces the participant list. People who are no longer
// on it are removed from every item.
func (s *Session) SetParticipants(names []string) error {
	if err := s.require("set participants", models.StateAddingPeople); err != nil {
		return err
	}
	clean, err := normalizeNames(names)
	if err != nil {
		return err
	}
	for _, old := range s.bill.Participants {
		if !slices.Contains(clean, old) {
			s.forget(old)
		}
	}
	s.bill.Participants = clean
	return nil
}

// UseGroup loads a saved group's members as the participant list.
func (s *Session) UseGroup(group *models.Group) error {
	if err := s.SetParticipants(group.Members); err != nil {
		return err
	}
	s.bill.GroupID = group.ID
	return nil
}

// RemoveParticipant drops a participant along with their assignments,
// manual shares and payer role.
func (s *Session) RemoveParticipant(name string) error {
	if err := s.require("remove participant", models.StateAddingPeople); err != nil {
		return err
	}
	if !s.isParticipant(name) {
		return fmt.Errorf("%w: %s", ErrUnknownParticipant, name)
	}
	s.forget(name)
	s.bill.Participants = slices.DeleteFunc(slices.Clone(s.bill.Participants), func(p string) bool { return p == name })
	return nil
}

func (s *Session) forget(name string) {
	for i := range s.bill.Items {
		item := &s.bill.Items[i]
		item.Participants = slices.DeleteFunc(item.Participants, func(p string) bool { return p == name })
		item.ManualSplit = slices.DeleteFunc(item.ManualSplit, func(m models.ManualShare) bool { return m.Participant == name })
		if len(item.ManualSplit) == 0 {
			item.ManualSplit = nil
		}
	}
	if s.bill.PayerID == name {
		s.bill.PayerID = ""
	}
}

// ConfirmParticipants moves on to assigning items. Items that were never
// assigned and have nobody on them default to everyone; an explicit empty
// assignment is kept.
func (s *Session) ConfirmParticipants() error {
	if err := s.require("confirm participants", models.StateAddingPeople); err != nil {
		return err
	}
	if len(s.bill.Participants) == 0 {
		return ErrNoParticipants
	}
	for i := range s.bill.Items {
		if item := &s.bill.Items[i]; !item.Assigned && len(item.Participants) == 0 {
			item.Participants = slices.Clone(s.bill.Participants)
		}
	}
	s.moveTo(models.StateAssigning)
	return nil
}
