package store

import "context"

// TokenStore exposes the access-token slot of the repository through the
// narrow Load/Save/Delete surface the API client expects.
type TokenStore struct {
	repo Repository
}

func NewTokenStore(repo Repository) *TokenStore {
	return &TokenStore{repo: repo}
}

func (s *TokenStore) Load(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, KeyAccessToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	return s.repo.Set(ctx, KeyAccessToken, []byte(token))
}

func (s *TokenStore) Delete(ctx context.Context) error {
	return s.repo.Delete(ctx, KeyAccessToken)
}
