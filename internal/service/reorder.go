package service

type orderable interface {
	CountOwned(profileID uint, ids []uint) (int64, error)
	ApplyOrder(profileID uint, ids []uint) error
}

// reorder rewrites display orders to the 1-based position of each id.
// Every id must belong to the profile, otherwise nothing changes.
func reorder(repo orderable, profileID uint, ids []uint, entity string) error {
	if len(ids) == 0 {
		return invalidf("orderedIds", "orderedIds must not be empty")
	}

	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return invalidf("orderedIds", "Duplicate id in ordering: %d", id)
		}
		seen[id] = struct{}{}
	}

	owned, err := repo.CountOwned(profileID, ids)
	if err != nil {
		return err
	}
	if owned != int64(len(ids)) {
		return notFound("One or more %s ids not found for profile %d", entity, profileID)
	}

	return repo.ApplyOrder(profileID, ids)
}
