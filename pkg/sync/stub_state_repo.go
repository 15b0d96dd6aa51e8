package sync

import "context"

type StubStateRepository struct {
	tokens map[string]string

	LoadErr error
	SaveErr error

	SaveCalls int
}

func NewStubStateRepository() *StubStateRepository {
	return &StubStateRepository{tokens: map[string]string{}}
}

func (r *StubStateRepository) LoadToken(ctx context.Context, calendarId string) (string, error) {
	if r.LoadErr != nil {
		return "", r.LoadErr
	}
	return r.tokens[calendarId], nil
}

func (r *StubStateRepository) SaveToken(ctx context.Context, calendarId string, token string) error {
	r.SaveCalls++
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.tokens[calendarId] = token
	return nil
}

func (r *StubStateRepository) Token(calendarId string) string {
	return r.tokens[calendarId]
}
