package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// ApplicationForm is the multipart payload for POST /apply. The upstream
// validates too, but rejecting junk locally keeps the form open with a
// usable message instead of a round-trip.
type ApplicationForm struct {
	VacancyID int64  `validate:"required,gt=0"`
	FirstName string `validate:"required,min=2"`
	Email     string `validate:"required,email"`
	Phone     string `validate:"omitempty,min=5"`
	JobTitle  string `validate:"required"`
	LinkedIn  string `validate:"omitempty,url"`
	CVName    string `validate:"required"`
}

var validate = validator.New()

func (f ApplicationForm) Validate() error {
	return validate.Struct(f)
}

// SubmitApplication sends the form plus the CV bytes as multipart form
// data. The upstream answers 201 on success.
func (c *Client) SubmitApplication(ctx context.Context, form ApplicationForm, cv io.Reader) error {
	if err := form.Validate(); err != nil {
		return &HTTPError{Message: fmt.Sprintf("invalid application: %v", err)}
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"vacancy_id": strconv.FormatInt(form.VacancyID, 10),
		"first_name": form.FirstName,
		"email":      form.Email,
		"phone":      form.Phone,
		"job_title":  form.JobTitle,
		"linkedin":   form.LinkedIn,
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return &HTTPError{Message: fmt.Sprintf("encode form: %v", err)}
		}
	}

	fw, err := mw.CreateFormFile("cv_file", form.CVName)
	if err != nil {
		return &HTTPError{Message: fmt.Sprintf("encode cv: %v", err)}
	}
	if _, err := io.Copy(fw, cv); err != nil {
		return &HTTPError{Message: fmt.Sprintf("read cv: %v", err)}
	}
	if err := mw.Close(); err != nil {
		return &HTTPError{Message: err.Error()}
	}

	full := c.urlFor("/apply", nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, full, &buf)
	if err != nil {
		return &HTTPError{Message: err.Error()}
	}
	req.Header.Set("User-Agent", "JobDesk/1.0 (+local)")
	req.Header.Set("Content-Type", mw.FormDataContentType())

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, full); err != nil {
			return &HTTPError{Message: err.Error()}
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return &HTTPError{Message: fmt.Sprintf("POST /apply: %v", err)}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &HTTPError{Status: res.StatusCode, Message: readErrorMessage(res)}
	}
	return nil
}
