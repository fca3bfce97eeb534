package controller

import (
	"context"
	"errors"
	"schoolscan_backend/internal/model"
	"schoolscan_backend/internal/repository"
	"schoolscan_backend/internal/util"
)

// GroupGuard resolves which class group a request may touch. Students are
// bound to their own group; teachers to the groups they mentor; admins pass.
type GroupGuard struct {
	UserRepo  *repository.UserRepository
	GroupRepo *repository.GroupRepository
}

func NewGroupGuard(userRepo *repository.UserRepository, groupRepo *repository.GroupRepository) GroupGuard {
	return GroupGuard{UserRepo: userRepo, GroupRepo: groupRepo}
}

// callerGroup returns the group the authenticated student belongs to.
func (g *GroupGuard) callerGroup(ctx context.Context, claims *util.Claims) (uint, error) {
	user, err := g.UserRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return 0, err
	}
	if user.ClassGroupID == nil {
		return 0, errors.New("user is not assigned to a class group")
	}
	return *user.ClassGroupID, nil
}

// memberOrMentor reports whether the caller may touch a group's collections:
// students must belong to the group, teachers must mentor it.
func (g *GroupGuard) memberOrMentor(ctx context.Context, claims *util.Claims, groupID uint) bool {
	if claims.Role == model.Student {
		own, err := g.callerGroup(ctx, claims)
		return err == nil && own == groupID
	}
	return g.mentorOwns(ctx, claims, groupID)
}

// studentGroup resolves the class group of an arbitrary student id.
func (g *GroupGuard) studentGroup(ctx context.Context, studentID uint) (uint, bool) {
	user, err := g.UserRepo.FindByID(ctx, studentID)
	if err != nil || user.ClassGroupID == nil {
		return 0, false
	}
	return *user.ClassGroupID, true
}

// mentorOwns reports whether the caller mentors the given group.
func (g *GroupGuard) mentorOwns(ctx context.Context, claims *util.Claims, groupID uint) bool {
	if claims.Role == model.Admin {
		return true
	}
	groups, err := g.GroupRepo.FindByMentor(ctx, claims.UserID)
	if err != nil {
		return false
	}
	for _, grp := range groups {
		if grp.ID == groupID {
			return true
		}
	}
	return false
}
