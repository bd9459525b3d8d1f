package service

import (
	"context"
	"strings"

	"github.com/hdcasedi/competenceo/internal/models"
	"github.com/hdcasedi/competenceo/internal/repo"
	"github.com/hdcasedi/competenceo/internal/tokens"
)

// ResourceService is the mutation substrate the guard protects: one
// ownership assertion per operation, no further business logic. A
// non-Allow decision means stored state was not touched.
type ResourceService struct {
	Repo  *repo.GormRepo
	Guard *Guard
}

func (s *ResourceService) CreateClassroom(ctx context.Context, claims *tokens.SessionClaims, name, description string) (*models.Classroom, Decision, error) {
	if claims == nil || claims.Subject == "" {
		return nil, DecisionDenied, nil
	}
	cls := &models.Classroom{
		Name:        name,
		Description: description,
		TeacherID:   claims.Subject,
	}
	if err := s.Repo.CreateClassroom(ctx, cls); err != nil {
		return nil, DecisionAllow, err
	}
	return cls, DecisionAllow, nil
}

func (s *ResourceService) UpdateClassroom(ctx context.Context, claims *tokens.SessionClaims, id, name, description string) (Decision, error) {
	ownerID, err := s.Repo.ClassroomOwner(ctx, id)
	if err != nil {
		return DecisionDenied, err
	}
	if d := s.Guard.AuthorizeMutation(claims, ownerID); d != DecisionAllow {
		return d, nil
	}
	cls, err := s.Repo.FindClassroom(ctx, id)
	if err != nil {
		return DecisionAllow, err
	}
	cls.Name = name
	cls.Description = description
	return DecisionAllow, s.Repo.SaveClassroom(ctx, cls)
}

func (s *ResourceService) DeleteClassroom(ctx context.Context, claims *tokens.SessionClaims, id string) (Decision, error) {
	ownerID, err := s.Repo.ClassroomOwner(ctx, id)
	if err != nil {
		return DecisionDenied, err
	}
	if d := s.Guard.AuthorizeMutation(claims, ownerID); d != DecisionAllow {
		return d, nil
	}
	return DecisionAllow, s.Repo.DeleteClassroom(ctx, id)
}

func (s *ResourceService) CreateDomain(ctx context.Context, claims *tokens.SessionClaims, title, description string) (*models.CompetencyDomain, Decision, error) {
	if claims == nil || claims.Subject == "" {
		return nil, DecisionDenied, nil
	}
	dom := &models.CompetencyDomain{
		Title:       title,
		Description: description,
		CreatedByID: claims.Subject,
	}
	if err := s.Repo.CreateDomain(ctx, dom); err != nil {
		return nil, DecisionAllow, err
	}
	return dom, DecisionAllow, nil
}

func (s *ResourceService) UpdateDomain(ctx context.Context, claims *tokens.SessionClaims, id, title, description string) (Decision, error) {
	ownerID, err := s.Repo.DomainOwner(ctx, id)
	if err != nil {
		return DecisionDenied, err
	}
	if d := s.Guard.AuthorizeMutation(claims, ownerID); d != DecisionAllow {
		return d, nil
	}
	dom, err := s.Repo.FindDomain(ctx, id)
	if err != nil {
		return DecisionAllow, err
	}
	dom.Title = title
	dom.Description = description
	return DecisionAllow, s.Repo.SaveDomain(ctx, dom)
}

func (s *ResourceService) DeleteDomain(ctx context.Context, claims *tokens.SessionClaims, id string) (Decision, error) {
	ownerID, err := s.Repo.DomainOwner(ctx, id)
	if err != nil {
		return DecisionDenied, err
	}
	if d := s.Guard.AuthorizeMutation(claims, ownerID); d != DecisionAllow {
		return d, nil
	}
	return DecisionAllow, s.Repo.DeleteDomain(ctx, id)
}

// CreateCompetency checks ownership of the parent domain, the edge a
// competency inherits.
func (s *ResourceService) CreateCompetency(ctx context.Context, claims *tokens.SessionClaims, domainID, title string) (*models.Competency, Decision, error) {
	ownerID, err := s.Repo.DomainOwner(ctx, domainID)
	if err != nil {
		return nil, DecisionDenied, err
	}
	if d := s.Guard.AuthorizeMutation(claims, ownerID); d != DecisionAllow {
		return nil, d, nil
	}
	comp := &models.Competency{
		Title:    title,
		DomainID: domainID,
	}
	if err := s.Repo.CreateCompetency(ctx, comp); err != nil {
		return nil, DecisionAllow, err
	}
	return comp, DecisionAllow, nil
}

func (s *ResourceService) UpdateCompetency(ctx context.Context, claims *tokens.SessionClaims, id, title string) (Decision, error) {
	ownerID, err := s.Repo.CompetencyOwner(ctx, id)
	if err != nil {
		return DecisionDenied, err
	}
	if d := s.Guard.AuthorizeMutation(claims, ownerID); d != DecisionAllow {
		return d, nil
	}
	comp, err := s.Repo.FindCompetency(ctx, id)
	if err != nil {
		return DecisionAllow, err
	}
	comp.Title = title
	return DecisionAllow, s.Repo.SaveCompetency(ctx, comp)
}

func (s *ResourceService) DeleteCompetency(ctx context.Context, claims *tokens.SessionClaims, id string) (Decision, error) {
	ownerID, err := s.Repo.CompetencyOwner(ctx, id)
	if err != nil {
		return DecisionDenied, err
	}
	if d := s.Guard.AuthorizeMutation(claims, ownerID); d != DecisionAllow {
		return d, nil
	}
	return DecisionAllow, s.Repo.DeleteCompetency(ctx, id)
}

// CreateStudent records a student account without credentials. A fully
// blank submission is dropped without touching storage; the email is
// optional, students are often entered by name only.
func (s *ResourceService) CreateStudent(ctx context.Context, claims *tokens.SessionClaims, firstName, lastName, email string) (*models.User, Decision, error) {
	if claims == nil || claims.Subject == "" {
		return nil, DecisionDenied, nil
	}

	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(email)
	if firstName == "" && lastName == "" && email == "" {
		return nil, DecisionAllow, nil
	}

	student := &models.User{
		FirstName: firstName,
		LastName:  lastName,
		Name:      strings.TrimSpace(firstName + " " + lastName),
		Role:      models.RoleStudent,
	}
	if email != "" {
		normalized := repo.NormalizeEmail(email)
		student.Email = &normalized
	}
	if err := s.Repo.CreateUser(ctx, student); err != nil {
		return nil, DecisionAllow, err
	}
	return student, DecisionAllow, nil
}

// CreateEnrollment requires ownership of the target classroom.
func (s *ResourceService) CreateEnrollment(ctx context.Context, claims *tokens.SessionClaims, classroomID, studentID string) (*models.Enrollment, Decision, error) {
	ownerID, err := s.Repo.ClassroomOwner(ctx, classroomID)
	if err != nil {
		return nil, DecisionDenied, err
	}
	if d := s.Guard.AuthorizeMutation(claims, ownerID); d != DecisionAllow {
		return nil, d, nil
	}
	enr := &models.Enrollment{
		ClassroomID: classroomID,
		StudentID:   studentID,
	}
	if err := s.Repo.CreateEnrollment(ctx, enr); err != nil {
		return nil, DecisionAllow, err
	}
	return enr, DecisionAllow, nil
}

func (s *ResourceService) DeleteEnrollment(ctx context.Context, claims *tokens.SessionClaims, id string) (Decision, error) {
	ownerID, err := s.Repo.EnrollmentOwner(ctx, id)
	if err != nil {
		return DecisionDenied, err
	}
	if d := s.Guard.AuthorizeMutation(claims, ownerID); d != DecisionAllow {
		return d, nil
	}
	return DecisionAllow, s.Repo.DeleteEnrollment(ctx, id)
}
