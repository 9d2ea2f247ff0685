package services

import "blog-platform/models"

// IsOwner reports whether caller owns a resource whose owner id is owner.
// A resource without an owner (id 0) is owned by nobody.
func IsOwner(owner, caller uint) bool {
	return owner != 0 && owner == caller
}

// IsVisible reports whether post can be read by caller; caller is nil for
// anonymous requests.
func IsVisible(post *models.Post, caller *models.Identity) bool {
	if post.IsPublished() {
		return true
	}
	return caller != nil && IsOwner(post.AuthorID, caller.ID)
}

func callerID(caller *models.Identity) uint {
	if caller == nil {
		return 0
	}
	return caller.ID
}
