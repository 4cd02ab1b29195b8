package tests

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/service"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

func newContactsService(t *testing.T) (*service.ContactsService, *mocks.MockContactsRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockContactsRepo(ctrl)

	return service.NewContactsService(repo), repo
}

func validData() models.ContactData {
	return models.ContactData{
		FirstName: "Иван",
		LastName:  "Петров",
		Email:     "ivan@mail.com",
		Phone:     "+79990001122",
		Birthday:  time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
	}
}

func TestContactsService_Create_OK(t *testing.T) {
	ctx := context.Background()
	svc, repo := newContactsService(t)

	owner := uuid.New()
	data := validData()

	repo.EXPECT().
		Create(ctx, owner, data).
		Return(models.Contact{ID: 1, UserID: owner}, nil)

	got, err := svc.Create(ctx, owner, data)

	require.NoError(t, err)
	require.Equal(t, int64(1), got.ID)
}

func TestContactsService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newContactsService(t)

	owner := uuid.New()

	cases := []struct {
		name   string
		mutate func(*models.ContactData)
	}{
		{"пустое имя", func(d *models.ContactData) { d.FirstName = "  " }},
		{"длинное имя", func(d *models.ContactData) { d.FirstName = strings.Repeat("а", 51) }},
		{"длинная фамилия", func(d *models.ContactData) { d.LastName = strings.Repeat("б", 51) }},
		{"пустой email", func(d *models.ContactData) { d.Email = "" }},
		{"длинный email", func(d *models.ContactData) { d.Email = strings.Repeat("e", 101) }},
		{"длинный телефон", func(d *models.ContactData) { d.Phone = strings.Repeat("9", 101) }},
		{"нет даты рождения", func(d *models.ContactData) { d.Birthday = time.Time{} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := validData()
			tc.mutate(&data)

			_, err := svc.Create(ctx, owner, data)
			require.ErrorIs(t, err, serr.ErrInvalidInput)
		})
	}
}

// Ровно 50 символов — ещё валидно
func TestContactsService_Create_BoundaryLength(t *testing.T) {
	ctx := context.Background()
	svc, repo := newContactsService(t)

	owner := uuid.New()
	data := validData()
	data.FirstName = strings.Repeat("а", 50)

	repo.EXPECT().
		Create(ctx, owner, data).
		Return(models.Contact{ID: 1}, nil)

	_, err := svc.Create(ctx, owner, data)
	require.NoError(t, err)
}

func TestContactsService_List_BadPagination(t *testing.T) {
	ctx := context.Background()
	svc, _ := newContactsService(t)

	_, err := svc.List(ctx, uuid.New(), -1, 10)
	require.ErrorIs(t, err, serr.ErrInvalidInput)

	_, err = svc.List(ctx, uuid.New(), 0, 0)
	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

// Поиск без фильтров — ошибка, репозиторий не дёргается
func TestContactsService_Find_NoFilters(t *testing.T) {
	ctx := context.Background()
	svc, _ := newContactsService(t)

	_, err := svc.Find(ctx, uuid.New(), nil, nil, nil)
	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

func TestContactsService_Find_OK(t *testing.T) {
	ctx := context.Background()
	svc, repo := newContactsService(t)

	owner := uuid.New()
	last := "Петр"

	repo.EXPECT().
		Find(ctx, owner, nil, &last, nil).
		Return(models.Contact{ID: 7}, nil)

	got, err := svc.Find(ctx, owner, nil, &last, nil)

	require.NoError(t, err)
	require.Equal(t, int64(7), got.ID)
}

func TestContactsService_Update_PassesOwner(t *testing.T) {
	ctx := context.Background()
	svc, repo := newContactsService(t)

	owner := uuid.New()
	data := validData()

	repo.EXPECT().
		Update(ctx, owner, int64(42), data).
		Return(models.Contact{}, serr.ErrNotFound)

	_, err := svc.Update(ctx, owner, 42, data)

	require.ErrorIs(t, err, serr.ErrNotFound)
}

func TestContactsService_Remove_OK(t *testing.T) {
	ctx := context.Background()
	svc, repo := newContactsService(t)

	owner := uuid.New()

	repo.EXPECT().
		Remove(ctx, owner, int64(3)).
		Return(models.Contact{ID: 3}, nil)

	got, err := svc.Remove(ctx, owner, 3)

	require.NoError(t, err)
	require.Equal(t, int64(3), got.ID)
}

func TestContactsService_UpcomingBirthdays_OK(t *testing.T) {
	ctx := context.Background()
	svc, repo := newContactsService(t)

	owner := uuid.New()

	repo.EXPECT().
		UpcomingBirthdays(ctx, owner, gomock.Any()).
		Return([]models.Contact{{ID: 1}}, nil)

	got, err := svc.UpcomingBirthdays(ctx, owner)

	require.NoError(t, err)
	require.Len(t, got, 1)
}
