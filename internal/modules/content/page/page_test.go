package page

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordpy/core/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) (*gorm.DB, *Service, string) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.PageModel{},
		&models.SectionModel{},
		&models.PageSectionModel{},
	))
	user := &models.UserModel{Username: "editor", Name: "Editor", Mail: "editor@example.com", IsStaff: true, IsActive: true}
	require.NoError(t, db.Create(user).Error)
	return db, NewService(db), user.ID
}

func TestCreateAppliesDefaults(t *testing.T) {
	_, svc, authorID := newTestDB(t)

	page, err := svc.Create(authorID, &CreatePageDTO{Title: "About Us", Content: "# hello"})
	require.NoError(t, err)
	assert.Equal(t, "about-us", page.Slug)
	assert.Equal(t, "About Us", page.MetaTitle)
	assert.True(t, page.IsPublished)
}

func TestMenuOrdering(t *testing.T) {
	_, svc, authorID := newTestDB(t)

	_, err := svc.Create(authorID, &CreatePageDTO{Title: "Second", ShowInMenu: true, MenuOrder: 2})
	require.NoError(t, err)
	_, err = svc.Create(authorID, &CreatePageDTO{Title: "First", ShowInMenu: true, MenuOrder: 1})
	require.NoError(t, err)
	hidden := false
	_, err = svc.Create(authorID, &CreatePageDTO{Title: "Hidden", ShowInMenu: true, MenuOrder: 0, IsPublished: &hidden})
	require.NoError(t, err)

	menu, err := svc.Menu()
	require.NoError(t, err)
	require.Len(t, menu, 2)
	assert.Equal(t, "First", menu[0].Title)
	assert.Equal(t, "Second", menu[1].Title)
}

func TestSectionAttachmentAndCompose(t *testing.T) {
	db, svc, authorID := newTestDB(t)

	page, err := svc.Create(authorID, &CreatePageDTO{Title: "Home", Content: "**bold**"})
	require.NoError(t, err)

	hero := models.SectionModel{Name: "Hero", SectionType: models.SectionHero, Title: "Welcome", ButtonText: "Go"}
	require.NoError(t, db.Create(&hero).Error)
	text := models.SectionModel{Name: "Intro", SectionType: models.SectionText, Content: "intro body"}
	require.NoError(t, db.Create(&text).Error)

	_, err = svc.AttachSection(page.ID, &AttachSectionDTO{SectionID: text.ID, Order: 2})
	require.NoError(t, err)
	heroBinding, err := svc.AttachSection(page.ID, &AttachSectionDTO{SectionID: hero.ID, Order: 1})
	require.NoError(t, err)

	composed, err := svc.Compose(page)
	require.NoError(t, err)
	assert.Contains(t, composed.HTML, "<strong>bold</strong>")
	require.Len(t, composed.Sections, 2)
	assert.Equal(t, models.SectionHero, composed.Sections[0].Type)
	assert.Equal(t, models.SectionText, composed.Sections[1].Type)

	inactive := false
	_, err = svc.ReorderSection(page.ID, heroBinding.ID, &ReorderSectionDTO{Order: 1, IsActive: &inactive})
	require.NoError(t, err)

	composed, err = svc.Compose(page)
	require.NoError(t, err)
	require.Len(t, composed.Sections, 1)
	assert.Equal(t, models.SectionText, composed.Sections[0].Type)
}

func TestAttachRejectsDuplicatePosition(t *testing.T) {
	db, svc, authorID := newTestDB(t)

	page, err := svc.Create(authorID, &CreatePageDTO{Title: "Home"})
	require.NoError(t, err)
	sec := models.SectionModel{Name: "Hero", SectionType: models.SectionHero}
	require.NoError(t, db.Create(&sec).Error)

	_, err = svc.AttachSection(page.ID, &AttachSectionDTO{SectionID: sec.ID, Order: 1})
	require.NoError(t, err)
	_, err = svc.AttachSection(page.ID, &AttachSectionDTO{SectionID: sec.ID, Order: 1})
	assert.EqualError(t, err, "section already attached at this position")

	_, err = svc.AttachSection(page.ID, &AttachSectionDTO{SectionID: sec.ID, Order: 2})
	assert.NoError(t, err)
}

func TestDetachSection(t *testing.T) {
	db, svc, authorID := newTestDB(t)

	page, err := svc.Create(authorID, &CreatePageDTO{Title: "Home"})
	require.NoError(t, err)
	sec := models.SectionModel{Name: "Hero", SectionType: models.SectionHero}
	require.NoError(t, db.Create(&sec).Error)

	binding, err := svc.AttachSection(page.ID, &AttachSectionDTO{SectionID: sec.ID, Order: 1})
	require.NoError(t, err)

	require.NoError(t, svc.DetachSection(page.ID, binding.ID))
	assert.ErrorIs(t, svc.DetachSection(page.ID, binding.ID), gorm.ErrRecordNotFound)
}
