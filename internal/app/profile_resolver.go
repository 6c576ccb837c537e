package app

import (
	"context"
	"errors"

	"campus-portal/internal/auth"
	"campus-portal/internal/leaverequest"
	leaverequesterrors "campus-portal/internal/leaverequest/errors"
	"campus-portal/internal/student"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// profileResolver maps portal accounts to roster identities for the leave
// workflow: students resolve through their roster row, approvers through
// the academic scope on their account.
type profileResolver struct {
	users    auth.Repository
	students student.Repository
}

func NewProfileResolver(users auth.Repository, students student.Repository) leaverequest.ProfileResolver {
	return &profileResolver{users: users, students: students}
}

func (r *profileResolver) ResolveRequester(ctx context.Context, schoolID, userID string) (leaverequest.RequesterProfile, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return leaverequest.RequesterProfile{}, leaverequesterrors.ErrInvalidActorID
	}

	user, err := r.users.GetByID(ctx, userUUID)
	if err != nil {
		return leaverequest.RequesterProfile{}, leaverequesterrors.ErrInvalidActorID
	}
	if user.StudentID == nil || user.SchoolID.String() != schoolID {
		return leaverequest.RequesterProfile{}, leaverequesterrors.ErrInvalidStudentID
	}

	st, err := r.students.FindByIDAndSchool(ctx, schoolID, user.StudentID.String())
	if err != nil {
		return leaverequest.RequesterProfile{}, leaverequesterrors.ErrInvalidStudentID
	}

	return leaverequest.RequesterProfile{
		StudentID:  st.ID.String(),
		FullName:   st.FullName,
		Department: st.Department,
		Year:       st.Year,
		Sem:        st.Sem,
		Div:        st.Div,
	}, nil
}

// ResolveStudentAccount returns the portal account id linked to a roster
// student, or "" when the student has not registered an account yet.
func (r *profileResolver) ResolveStudentAccount(ctx context.Context, schoolID, studentID string) (string, error) {
	studentUUID, err := uuid.Parse(studentID)
	if err != nil {
		return "", leaverequesterrors.ErrInvalidStudentID
	}

	user, err := r.users.GetByStudentID(ctx, studentUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	if user.SchoolID.String() != schoolID {
		return "", nil
	}

	return user.ID.String(), nil
}

func (r *profileResolver) ResolveApprover(ctx context.Context, schoolID, userID string) (leaverequest.ApproverScope, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return leaverequest.ApproverScope{}, leaverequesterrors.ErrInvalidActorID
	}

	user, err := r.users.GetByID(ctx, userUUID)
	if err != nil {
		return leaverequest.ApproverScope{}, leaverequesterrors.ErrInvalidActorID
	}
	if user.SchoolID.String() != schoolID {
		return leaverequest.ApproverScope{}, leaverequesterrors.ErrInvalidActorID
	}

	return leaverequest.ApproverScope{
		Role:       user.Role,
		Department: user.Department,
		Year:       user.Year,
		Sem:        user.Sem,
		Div:        user.Div,
	}, nil
}
