package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/producthouse/producthouse/internal/collab"
	"github.com/producthouse/producthouse/internal/db"
	"github.com/producthouse/producthouse/internal/domain"
	"github.com/producthouse/producthouse/internal/llm"
	"github.com/producthouse/producthouse/internal/render"
	"github.com/producthouse/producthouse/internal/repository"
)

type collabService struct {
	masterplans repository.MasterplanRepo
	versions    repository.VersionRepo
	completions llm.Client
	uow         db.UnitOfWork
	policy      collab.VersionPolicy
}

func NewCollabService(masterplans repository.MasterplanRepo, versions repository.VersionRepo, completions llm.Client, uow db.UnitOfWork, policy collab.VersionPolicy) CollabService {
	return &collabService{
		masterplans: masterplans,
		versions:    versions,
		completions: completions,
		uow:         uow,
		policy:      policy,
	}
}

func (s *collabService) SaveVersion(ctx context.Context, user domain.User, masterplanID string, sections []domain.Section) (*domain.Masterplan, *domain.Version, error) {
	if !user.Resolved() {
		return nil, nil, &domain.AuthorizationError{Action: "saving a version"}
	}
	return s.commitSections(ctx, user, masterplanID, sections)
}

func (s *collabService) ListVersions(ctx context.Context, masterplanID string) ([]*domain.Version, error) {
	if _, err := s.masterplans.GetByID(ctx, masterplanID); err != nil {
		return nil, err
	}
	return s.versions.ListByMasterplan(ctx, masterplanID)
}

func (s *collabService) GetVersion(ctx context.Context, versionID string) (*VersionDetail, error) {
	v, err := s.versions.GetByID(ctx, versionID)
	if err != nil {
		return nil, err
	}
	return &VersionDetail{
		Version:  v,
		Previews: collab.PreviewChanges(v.Changes),
	}, nil
}

// RestoreVersion rewinds the document to the target version: the
// masterplan takes the target's version string and no new history
// record is written.
func (s *collabService) RestoreVersion(ctx context.Context, user domain.User, masterplanID, versionID string) (*domain.Masterplan, error) {
	if !user.Resolved() {
		return nil, &domain.AuthorizationError{Action: "restoring a version"}
	}

	var out *domain.Masterplan
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLiteMasterplanRepo(tx)
		txVersions := repository.NewSQLiteVersionRepo(tx)

		v, err := txVersions.GetByID(ctx, versionID)
		if err != nil {
			return err
		}
		if v.MasterplanID != masterplanID {
			return &domain.NotFoundError{Kind: "version", ID: versionID}
		}

		current, err := txPlans.GetByID(ctx, masterplanID)
		if err != nil {
			return err
		}

		expectedVersion := current.Version
		current.Sections = collab.ApplyChanges(current.Sections, v.Changes)
		current.Version = v.Version
		current.UpdatedAt = time.Now().UTC()
		if err := regenerateFormats(current); err != nil {
			return err
		}
		if err := txPlans.UpdateDocument(ctx, current, expectedVersion); err != nil {
			return err
		}

		out = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *collabService) RefineSection(ctx context.Context, user domain.User, masterplanID, sectionID, instruction string) (*domain.Masterplan, error) {
	if !user.Resolved() {
		return nil, &domain.AuthorizationError{Action: "refining a section"}
	}
	if strings.TrimSpace(instruction) == "" {
		return nil, &domain.ValidationError{Field: "instruction", Reason: "must not be empty"}
	}

	mp, err := s.masterplans.GetByID(ctx, masterplanID)
	if err != nil {
		return nil, err
	}
	section := mp.SectionByID(sectionID)
	if section == nil {
		return nil, &domain.NotFoundError{Kind: "section", ID: sectionID}
	}

	resp, err := s.completions.Complete(ctx, llm.CompleteRequest{
		System: refineSystemPrompt,
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: refinePrompt(section, instruction),
		}},
	})
	if err != nil {
		return nil, err
	}

	updated := mp.CloneSections()
	for i := range updated {
		if updated[i].ID == sectionID {
			updated[i].Content = strings.TrimSpace(resp.Content)
		}
	}

	refined, _, err := s.commitSections(ctx, user, masterplanID, updated)
	return refined, err
}

func (s *collabService) RequestReview(ctx context.Context, masterplanID, prompt string) (*collab.ReviewSession, error) {
	mp, err := s.masterplans.GetByID(ctx, masterplanID)
	if err != nil {
		return nil, err
	}

	resp, err := s.completions.Complete(ctx, llm.CompleteRequest{
		System: reviewSystemPrompt,
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: reviewPrompt(mp, prompt),
		}},
	})
	if err != nil {
		return nil, err
	}

	return &collab.ReviewSession{
		MasterplanID: masterplanID,
		Prompt:       prompt,
		Suggestions:  collab.ParseSuggestions(resp.Content, mp),
	}, nil
}

func (s *collabService) ApplyReview(ctx context.Context, user domain.User, session *collab.ReviewSession) (*domain.Masterplan, error) {
	if !user.Resolved() {
		return nil, &domain.AuthorizationError{Action: "applying review suggestions"}
	}

	mp, err := s.masterplans.GetByID(ctx, session.MasterplanID)
	if err != nil {
		return nil, err
	}

	updated := session.ApplySelected(mp.Sections)
	applied, _, err := s.commitSections(ctx, user, session.MasterplanID, updated)
	return applied, err
}

// commitSections is the single write path for document edits: it diffs
// the new sections against the stored document, bumps the minor version,
// regenerates every stored format and appends the version record. All of
// it happens in one transaction guarded by a compare-and-swap on the
// version the document was read at.
func (s *collabService) commitSections(ctx context.Context, user domain.User, masterplanID string, sections []domain.Section) (*domain.Masterplan, *domain.Version, error) {
	var (
		outPlan    *domain.Masterplan
		outVersion *domain.Version
	)

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLiteMasterplanRepo(tx)
		txVersions := repository.NewSQLiteVersionRepo(tx)

		current, err := txPlans.GetByID(ctx, masterplanID)
		if err != nil {
			return err
		}

		changes := collab.ComputeChanges(current.Sections, sections)
		if len(changes) == 0 && !s.policy.RecordEmpty {
			outPlan = current
			return nil
		}

		bumped, err := domain.BumpVersion(current.Version)
		if err != nil {
			return err
		}

		expectedVersion := current.Version
		now := time.Now().UTC()

		current.Sections = sections
		current.Version = bumped
		current.UpdatedAt = now
		if err := regenerateFormats(current); err != nil {
			return err
		}
		if err := txPlans.UpdateDocument(ctx, current, expectedVersion); err != nil {
			return err
		}

		v := &domain.Version{
			ID:           uuid.New().String(),
			MasterplanID: masterplanID,
			Version:      bumped,
			CreatedAt:    now,
			UserID:       user.ID,
			UserName:     user.Name,
			Changes:      changes,
		}
		if err := txVersions.Create(ctx, v); err != nil {
			return err
		}

		outPlan = current
		outVersion = v
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return outPlan, outVersion, nil
}

// regenerateFormats re-renders every format the masterplan already
// carries so stored renderings never lag the section contents.
func regenerateFormats(m *domain.Masterplan) error {
	for format := range m.Formats {
		rendered, err := render.Render(m, format)
		if err != nil {
			return err
		}
		m.Formats[format] = rendered
	}
	return nil
}

const refineSystemPrompt = `You are a product specification editor. Rewrite the provided section according to the instruction. Respond with the rewritten section content only, no headings and no commentary.`

func refinePrompt(section *domain.Section, instruction string) string {
	return fmt.Sprintf("Section: %s\n\nCurrent content:\n%s\n\nInstruction: %s", section.Title, section.Content, instruction)
}

const reviewSystemPrompt = `You are a senior product manager reviewing a product masterplan. For each section you would improve, respond with a block in exactly this format:

SECTION_ID: [the section's id]
SECTION_TITLE: [the section's title]
SUGGESTED_CONTENT:
[the full improved content for the section]
END_SECTION

Only include sections you would change. Do not include any other text.`

func reviewPrompt(m *domain.Masterplan, prompt string) string {
	var b strings.Builder
	if strings.TrimSpace(prompt) != "" {
		b.WriteString("Review focus: ")
		b.WriteString(prompt)
		b.WriteString("\n\n")
	}
	b.WriteString("Masterplan: ")
	b.WriteString(m.Title)
	b.WriteString("\n\n")
	for _, s := range m.Sections {
		fmt.Fprintf(&b, "[%s] %s\n%s\n\n", s.ID, s.Title, s.Content)
	}
	return b.String()
}
