package registrations_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/domain/aggregates/registration"
	registrationtemplates "github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/presentation/templates/pages/registrations"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/presentation/viewmodels"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/application"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/composables"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/constants"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/types"
)

func newPageRequest(t *testing.T, target string) *http.Request {
	t.Helper()

	bundle := application.LoadBundle()
	data, err := registry.LocaleFiles.ReadFile("presentation/locales/en.json")
	require.NoError(t, err)
	bundle.MustParseMessageFileBytes(data, "en.json")

	r := httptest.NewRequest(http.MethodGet, target, nil)
	pageCtx := &types.PageContext{
		Locale:    language.English,
		URL:       r.URL,
		Localizer: i18n.NewLocalizer(bundle, "en"),
	}
	ctx := composables.WithPageCtx(r.Context(), pageCtx)
	ctx = context.WithValue(ctx, constants.LoggerKey, logrus.NewEntry(logrus.New()))
	return r.WithContext(ctx)
}

func parseHTML(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	return doc
}

func TestListPage_RendersRowsAndSearchWiring(t *testing.T) {
	props := &viewmodels.RegistrationsListPageProps{
		Items: []*viewmodels.Registration{
			{
				ID:               "veh-1",
				OwnerID:          "own-1",
				PlateNo:          "ABC-123",
				Manufacturer:     "Toyota",
				Model:            "Corolla",
				ManufacturedYear: "2020",
				VehicleType:      "Sedan",
				Color:            "Blue",
				Owner:            "Alice Smith",
				RegistrationDate: "2022-03-04",
				EditURL:          "/vehicles/veh-1/edit",
				DeleteURL:        "/vehicles/veh-1",
			},
			{
				ID:               "veh-2",
				PlateNo:          "XYZ-789",
				Manufacturer:     "Honda",
				ManufacturedYear: "2018",
				EditURL:          "/vehicles/veh-2/edit",
				DeleteURL:        "/vehicles/veh-2",
			},
		},
		Loading:   true,
		NewURL:    "/vehicles/new",
		SearchURL: "/vehicles",
	}

	w := httptest.NewRecorder()
	registrationtemplates.Index(w, newPageRequest(t, "/vehicles"), props)
	doc := parseHTML(t, w)

	rows := doc.Find("table.records tbody tr")
	require.Equal(t, 2, rows.Length())
	require.Equal(t, "ABC-123", rows.First().Find("td").First().Text())
	id, _ := rows.First().Attr("data-registration-id")
	require.Equal(t, "veh-1", id)

	search := doc.Find("input[name='q']")
	require.Equal(t, 1, search.Length())
	hxGet, _ := search.Attr("hx-get")
	require.Equal(t, "/vehicles", hxGet)
	hxTarget, _ := search.Attr("hx-target")
	require.Equal(t, "#registrations-table", hxTarget)

	require.True(t, doc.Find("span.loading-indicator").HasClass("is-loading"))

	newLink, _ := doc.Find("a[data-testid='new-registration']").Attr("href")
	require.Equal(t, "/vehicles/new", newLink)
}

func TestListPage_DeleteButtonsAlwaysConfirm(t *testing.T) {
	props := &viewmodels.RegistrationsListPageProps{
		Items: []*viewmodels.Registration{
			{ID: "veh-1", PlateNo: "ABC-123", DeleteURL: "/vehicles/veh-1"},
			{ID: "veh-2", PlateNo: "XYZ-789", DeleteURL: "/vehicles/veh-2"},
			{ID: "veh-3", PlateNo: "QQQ-000", DeleteURL: "/vehicles/veh-3"},
		},
	}

	w := httptest.NewRecorder()
	registrationtemplates.Index(w, newPageRequest(t, "/vehicles"), props)
	doc := parseHTML(t, w)

	buttons := doc.Find("button[hx-delete]")
	require.Equal(t, 3, buttons.Length())
	buttons.Each(func(_ int, s *goquery.Selection) {
		confirm, ok := s.Attr("hx-confirm")
		require.True(t, ok)
		require.Contains(t, confirm, "Delete this registration?")
	})
}

func TestListPage_EmptyStatesAndBanners(t *testing.T) {
	w := httptest.NewRecorder()
	registrationtemplates.Index(w, newPageRequest(t, "/vehicles"), &viewmodels.RegistrationsListPageProps{
		FlashSuccess: "Registration created.",
		BannerError:  "HTTP error! Status: 502",
	})
	doc := parseHTML(t, w)

	require.Contains(t, doc.Find("div.empty-state").Text(), "No registrations yet")
	require.Equal(t, "Registration created.", doc.Find("div.flash-success").Text())
	require.Equal(t, "HTTP error! Status: 502", doc.Find("div.banner-error").Text())

	// A non-empty query switches the empty state to the no-matches copy.
	w = httptest.NewRecorder()
	registrationtemplates.Index(w, newPageRequest(t, "/vehicles?q=zzz"), &viewmodels.RegistrationsListPageProps{Q: "zzz"})
	doc = parseHTML(t, w)
	require.Contains(t, doc.Find("div.empty-state").Text(), "No registrations match your search.")
}

func TestFormPage_FieldErrorsKeepEnteredValues(t *testing.T) {
	props := &viewmodels.RegistrationFormPageProps{
		Form: &viewmodels.RegistrationFormVM{
			Manufacturer:     "Tesla",
			ManufacturedYear: "1850",
		},
		Errors: map[string]string{
			"PlateNo":          "Plate Number is required.",
			"ManufacturedYear": "Year of Manufacture must be a year between 1900 and the next calendar year.",
		},
		PostTo:  "/vehicles",
		BackURL: "/vehicles",
		MinYear: registration.MinManufacturedYear,
		MaxYear: registration.MaxManufacturedYear(),
	}

	w := httptest.NewRecorder()
	registrationtemplates.Form(w, newPageRequest(t, "/vehicles/new"), props)
	doc := parseHTML(t, w)

	require.Contains(t, doc.Find("h1").Text(), "New Registration")

	action, _ := doc.Find("form.record-form").Attr("action")
	require.Equal(t, "/vehicles", action)

	manufacturer, _ := doc.Find("input#Manufacturer").Attr("value")
	require.Equal(t, "Tesla", manufacturer)

	plateErr := doc.Find("input#PlateNo").Parent().Find("span.field-error")
	require.Equal(t, "Plate Number is required.", plateErr.Text())

	year := doc.Find("input#ManufacturedYear")
	min, _ := year.Attr("min")
	require.Equal(t, strconv.Itoa(registration.MinManufacturedYear), min)
	max, _ := year.Attr("max")
	require.Equal(t, strconv.Itoa(registration.MaxManufacturedYear()), max)
	yearErr := year.Parent().Find("span.field-error")
	require.Contains(t, yearErr.Text(), "between 1900 and the next calendar year")
}

func TestFormPage_MandatoryInputsAreRequired(t *testing.T) {
	props := &viewmodels.RegistrationFormPageProps{
		Form:    &viewmodels.RegistrationFormVM{},
		Errors:  map[string]string{},
		PostTo:  "/vehicles",
		BackURL: "/vehicles",
		MinYear: registration.MinManufacturedYear,
		MaxYear: registration.MaxManufacturedYear(),
	}

	w := httptest.NewRecorder()
	registrationtemplates.Form(w, newPageRequest(t, "/vehicles/new"), props)
	doc := parseHTML(t, w)

	for _, id := range []string{"OwnerID", "PlateNo", "Manufacturer", "ManufacturedYear", "VehicleType", "Owner"} {
		_, ok := doc.Find("input#" + id).Attr("required")
		require.True(t, ok, "input %s must be required", id)
	}
	for _, id := range []string{"Model", "Color", "RegistrationDate"} {
		_, ok := doc.Find("input#" + id).Attr("required")
		require.False(t, ok, "input %s must stay optional", id)
	}
}

func TestFormPage_EditTitleAndBanner(t *testing.T) {
	props := &viewmodels.RegistrationFormPageProps{
		Form:        &viewmodels.RegistrationFormVM{PlateNo: "ABC-123"},
		Errors:      map[string]string{},
		BannerError: "Registration not found",
		PostTo:      "/vehicles/veh-1",
		BackURL:     "/vehicles",
		Editing:     true,
		MinYear:     registration.MinManufacturedYear,
		MaxYear:     registration.MaxManufacturedYear(),
	}

	w := httptest.NewRecorder()
	registrationtemplates.Form(w, newPageRequest(t, "/vehicles/veh-1/edit"), props)
	doc := parseHTML(t, w)

	require.Contains(t, doc.Find("h1").Text(), "Edit Registration")
	require.Equal(t, "Registration not found", doc.Find("div.banner-error").Text())

	back, _ := doc.Find("a.btn-secondary").Attr("href")
	require.Equal(t, "/vehicles", back)
}
