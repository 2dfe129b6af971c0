package controllers_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/presentation/controllers"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/services"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/itf"
)

func setupSuite(t *testing.T) *itf.Suite {
	t.Helper()
	builder := itf.NewSuiteBuilder(t)
	suite := builder.
		WithModules(registry.NewModule(&registry.ModuleOptions{BackendBaseURL: builder.Backend().URL()})).
		Build()
	suite.Register(
		controllers.NewRegistrationsController(suite.Env().App),
		controllers.NewHealthController(suite.Env().App),
	)
	return suite
}

func seedRecords(backend *itf.Backend) []itf.BackendRecord {
	return backend.Seed(
		itf.BackendRecord{
			OwnerID:          "own-1",
			PlateNo:          "ABC-123",
			Manufacturer:     "Toyota",
			Model:            "Corolla",
			ManufacturedYear: 2020,
			VehicleType:      "Sedan",
			Color:            "Blue",
			Owner:            "Alice Smith",
			RegistrationDate: "2022-03-04T00:00:00.000Z",
		},
		itf.BackendRecord{
			OwnerID:          "own-2",
			PlateNo:          "XYZ-789",
			Manufacturer:     "Honda",
			Model:            "Civic",
			ManufacturedYear: 2018,
			VehicleType:      "Hatchback",
			Owner:            "Bob Jones",
		},
	)
}

func validForm() url.Values {
	return url.Values{
		"OwnerID":          {"own-9"},
		"PlateNo":          {"NEW-001"},
		"Manufacturer":     {"Tesla"},
		"Model":            {"Model 3"},
		"ManufacturedYear": {"2023"},
		"VehicleType":      {"Sedan"},
		"Color":            {"White"},
		"Owner":            {"Cara Lee"},
		"RegistrationDate": {"2023-05-06"},
	}
}

func TestRegistrationsController_List(t *testing.T) {
	suite := setupSuite(t)
	backend := suite.Env().Backend
	seedRecords(backend)

	suite.GET("/vehicles").
		Assert(t).
		ExpectOK().
		ExpectHTML().
		ExpectElement("//nav[@class='topbar']").
		ExpectElement("//h1[contains(text(),'Vehicle Registrations')]").
		ExpectElementCount("//table[@class='records']/tbody/tr", 2).
		ExpectElement("//tr[@data-registration-id='veh-1']/td[text()='ABC-123']").
		ExpectElement("//td[text()='2022-03-04']")

	require.Equal(t, 1, backend.ListCalls())

	svc := itf.GetService[services.RegistrationService](suite.Env())
	require.Len(t, svc.Cached(), 2)
}

func TestRegistrationsController_List_SearchFragment(t *testing.T) {
	suite := setupSuite(t)
	backend := suite.Env().Backend
	seedRecords(backend)

	// Warm the cache with a full page load first.
	suite.GET("/vehicles").Assert(t).ExpectOK()

	suite.GET("/vehicles").
		WithQuery(map[string]string{"q": "toyota"}).
		HTMX().
		Assert(t).
		ExpectOK().
		ExpectHTML().
		ExpectNoElement("//nav").
		ExpectElementCount("//table[@class='records']/tbody/tr", 1).
		ExpectElement("//td[text()='ABC-123']").
		ExpectNoElement("//td[text()='XYZ-789']")

	// The search was answered from the cache.
	require.Equal(t, 1, backend.ListCalls())
}

func TestRegistrationsController_List_EmptyStates(t *testing.T) {
	suite := setupSuite(t)

	suite.GET("/vehicles").
		Assert(t).
		ExpectOK().
		ExpectBodyContains("No registrations yet. Create the first one.")

	suite.GET("/vehicles").
		WithQuery(map[string]string{"q": "zzz"}).
		HTMX().
		Assert(t).
		ExpectOK().
		ExpectBodyContains("No registrations match your search.")
}

func TestRegistrationsController_List_BackendDown(t *testing.T) {
	suite := setupSuite(t)
	suite.Env().Backend.FailListWith(http.StatusInternalServerError, "boom")

	// The page still renders, with the failure in a banner.
	suite.GET("/vehicles").
		Assert(t).
		ExpectOK().
		ExpectHTML().
		ExpectElement("//div[@class='banner-error' and contains(text(),'boom')]").
		ExpectElement("//div[@class='empty-state']")
}

func TestRegistrationsController_NewForm(t *testing.T) {
	suite := setupSuite(t)
	today := time.Now().Format(time.DateOnly)

	suite.GET("/vehicles/new").
		Assert(t).
		ExpectOK().
		ExpectHTML().
		ExpectElement("//h1[contains(text(),'New Registration')]").
		ExpectElement("//form[@action='/vehicles']").
		ExpectElement(fmt.Sprintf("//input[@name='RegistrationDate' and @value='%s']", today)).
		ExpectElement("//input[@name='ManufacturedYear' and @min='1900']")
}

func TestRegistrationsController_Create(t *testing.T) {
	suite := setupSuite(t)
	backend := suite.Env().Backend

	resp := suite.POST("/vehicles").
		Form(validForm()).
		Assert(t).
		ExpectRedirect("/vehicles")
	require.Equal(t, "Registration created.", resp.FlashCookie("success"))

	records := backend.Records()
	require.Len(t, records, 1)
	require.Equal(t, "veh-1", records[0].ID)
	require.Equal(t, "NEW-001", records[0].PlateNo)
	require.Equal(t, 2023, records[0].ManufacturedYear)
	require.Equal(t, "2023-05-06", records[0].RegistrationDate)

	// The mutation triggers a full cache refresh.
	require.Equal(t, 1, backend.ListCalls())
}

func TestRegistrationsController_Create_FlashShownOnce(t *testing.T) {
	suite := setupSuite(t)

	created := suite.POST("/vehicles").
		Form(validForm()).
		Assert(t).
		ExpectRedirect("/vehicles")

	list := suite.GET("/vehicles")
	for _, cookie := range created.Cookies() {
		list.Cookie(cookie)
	}
	resp := list.Assert(t).ExpectOK()
	resp.ExpectHTML().
		ExpectElement("//div[@class='flash-success' and contains(text(),'Registration created.')]")

	// Rendering the flash clears the cookie.
	var cleared bool
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "success" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	require.True(t, cleared, "expected the success cookie to be cleared")
}

func TestRegistrationsController_Create_ValidationErrors(t *testing.T) {
	suite := setupSuite(t)
	backend := suite.Env().Backend

	form := validForm()
	form.Del("PlateNo")
	form.Set("ManufacturedYear", "1850")

	suite.POST("/vehicles").
		Form(form).
		Assert(t).
		ExpectOK().
		ExpectHTML().
		ExpectElement("//span[@class='field-error' and text()='Plate Number is required.']").
		ExpectElement("//span[@class='field-error' and contains(text(),'between 1900 and the next calendar year')]").
		ExpectElement("//input[@name='Manufacturer' and @value='Tesla']")

	// Nothing reached the backend.
	require.Empty(t, backend.Records())
	require.Equal(t, 0, backend.ListCalls())
}

func TestRegistrationsController_Create_BackendRejects(t *testing.T) {
	suite := setupSuite(t)
	backend := suite.Env().Backend
	backend.FailCreateWith(http.StatusConflict, "Registration with this plate number already exists")

	suite.POST("/vehicles").
		Form(validForm()).
		Assert(t).
		ExpectOK().
		ExpectHTML().
		ExpectElement("//div[@class='banner-error' and contains(text(),'already exists')]").
		ExpectElement("//input[@name='PlateNo' and @value='NEW-001']")

	require.Empty(t, backend.Records())
}

func TestRegistrationsController_Create_RefreshFailure(t *testing.T) {
	suite := setupSuite(t)
	backend := suite.Env().Backend
	backend.FailListWith(http.StatusBadGateway, "list is down")

	// The record is stored even though the follow-up fetch fails.
	resp := suite.POST("/vehicles").
		Form(validForm()).
		Assert(t).
		ExpectRedirect("/vehicles")
	require.Equal(t, "Registration created.", resp.FlashCookie("success"))
	require.Equal(t, "list is down", resp.FlashCookie("error"))
	require.Len(t, backend.Records(), 1)
}

func TestRegistrationsController_EditForm(t *testing.T) {
	suite := setupSuite(t)
	seedRecords(suite.Env().Backend)

	suite.GET("/vehicles/veh-1/edit").
		Assert(t).
		ExpectOK().
		ExpectHTML().
		ExpectElement("//h1[contains(text(),'Edit Registration')]").
		ExpectElement("//form[@action='/vehicles/veh-1']").
		ExpectElement("//input[@name='PlateNo' and @value='ABC-123']").
		ExpectElement("//input[@name='ManufacturedYear' and @value='2020']").
		ExpectElement("//input[@name='RegistrationDate' and @value='2022-03-04']")
}

func TestRegistrationsController_EditForm_UnknownID(t *testing.T) {
	suite := setupSuite(t)
	seedRecords(suite.Env().Backend)

	suite.GET("/vehicles/missing/edit").
		Assert(t).
		ExpectNotFound()
}

func TestRegistrationsController_Update(t *testing.T) {
	suite := setupSuite(t)
	backend := suite.Env().Backend
	seedRecords(backend)

	form := validForm()
	form.Set("PlateNo", "ABC-123")
	form.Set("Color", "Red")

	resp := suite.POST("/vehicles/veh-1").
		Form(form).
		Assert(t).
		ExpectRedirect("/vehicles")
	require.Equal(t, "Registration updated.", resp.FlashCookie("success"))

	records := backend.Records()
	require.Len(t, records, 2)
	require.Equal(t, "Red", records[0].Color)
	require.Equal(t, "Tesla", records[0].Manufacturer)
}

func TestRegistrationsController_Update_UnknownID(t *testing.T) {
	suite := setupSuite(t)
	seedRecords(suite.Env().Backend)

	// The backend rejects the id; the form re-renders with the failure.
	suite.POST("/vehicles/missing").
		Form(validForm()).
		Assert(t).
		ExpectOK().
		ExpectHTML().
		ExpectElement("//div[@class='banner-error' and contains(text(),'Registration not found')]")
}

func TestRegistrationsController_Delete(t *testing.T) {
	suite := setupSuite(t)
	backend := suite.Env().Backend
	seedRecords(backend)

	resp := suite.DELETE("/vehicles/veh-1").
		Assert(t).
		ExpectRedirect("/vehicles")
	require.Equal(t, "Registration ABC-123 deleted.", resp.FlashCookie("success"))

	records := backend.Records()
	require.Len(t, records, 1)
	require.Equal(t, "XYZ-789", records[0].PlateNo)
}

func TestRegistrationsController_Delete_HTMX(t *testing.T) {
	suite := setupSuite(t)
	backend := suite.Env().Backend
	seedRecords(backend)

	suite.DELETE("/vehicles/veh-2").
		HTMX().
		Assert(t).
		ExpectOK().
		ExpectHeader("Hx-Redirect", "/vehicles")

	require.Len(t, backend.Records(), 1)
}

func TestRegistrationsController_Delete_UnknownID(t *testing.T) {
	suite := setupSuite(t)
	seedRecords(suite.Env().Backend)

	resp := suite.DELETE("/vehicles/missing").
		Assert(t).
		ExpectRedirect("/vehicles")
	require.Equal(t, "Registration not found", resp.FlashCookie("error"))
}

func TestRegistrationsController_Smoke(t *testing.T) {
	suite := setupSuite(t)
	seedRecords(suite.Env().Backend)

	suite.RunCases(itf.Cases(
		itf.GET("/vehicles").Named("list page").ExpectOK().ExpectBodyContains("Vehicle Registrations"),
		itf.GET("/vehicles/new").Named("create form").ExpectOK().ExpectBodyContains("New Registration"),
		itf.GET("/vehicles/veh-1/edit").Named("edit form").ExpectOK().ExpectBodyContains("Edit Registration"),
		itf.GET("/vehicles").Named("search fragment").
			WithQuery(map[string]string{"q": "toyota"}).
			HTMX().
			ExpectOK().
			ExpectBodyContains("ABC-123"),
		itf.GET("/").Named("root redirect").ExpectStatus(http.StatusFound),
	))
}
