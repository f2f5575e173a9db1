// internal/service/template_service.go
package service

import (
    "strings"

    "github.com/kamaubrian/customerhub-backend/internal/model"
)

func RenderTemplate(template string, data map[string]string) string {
    result := template
    for k, v := range data {
        if v == "" {
            v = "<unknown>"
        }
        result = strings.ReplaceAll(result, "{"+k+"}", v)
    }
    return result
}

// CustomerData maps a customer to the placeholders available in templates
func CustomerData(c *model.Customer) map[string]string {
    return map[string]string{
        "first_name":        c.FirstName,
        "last_name":         c.LastName,
        "email":             c.Email,
        "location":          c.Location,
        "verification_code": c.VerificationCode,
    }
}
