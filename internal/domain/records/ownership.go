package records

import "context"

// OwnsAll indica si todos los ids existen y pertenecen a ownerID.
// Se usa desde shares para no importar el repo de records directamente.
func (s *Service) OwnsAll(ctx context.Context, ownerID string, ids []string) (bool, error) {
	recs, err := s.GetByIDs(ctx, ids)
	if err != nil {
		return false, err
	}

	found := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		if r.OwnerID != ownerID {
			return false, nil
		}
		found[r.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}
