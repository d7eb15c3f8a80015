package api

import (
	"net/http"

	"github.com/mcggEz/gradalyze/internal/config"
	"github.com/mcggEz/gradalyze/pkg/openapi"
)

// buildSpec constructs the OpenAPI document for the service and returns a
// handler that serves it as JSON.
func buildSpec(cfg *config.Config) (http.HandlerFunc, error) {
	spec := openapi.NewSpec("Gradalyze API", cfg.Version)
	spec.SetDescription("Academic profiling service: transcript and certificate management, grade reconciliation, archetype analysis, and career matching.")
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"User": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                {Type: "string", Format: "uuid"},
				"name":              {Type: "string"},
				"email":             {Type: "string", Format: "email"},
				"student_number":    {Type: "string"},
				"program":           {Type: "string"},
				"primary_archetype": {Type: "string"},
				"tor_url":           {Type: "string"},
				"certificate_paths": {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
		"GradeRow": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "integer", Format: "int64"},
				"subject":      {Type: "string"},
				"course_code":  {Type: "string"},
				"course_title": {Type: "string"},
				"units":        {Type: "integer"},
				"grade":        {Type: "number"},
				"semester":     {Type: "string"},
				"category":     {Type: "string"},
			},
		},
		"GradeTable": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"rows":      {Type: "array", Items: openapi.SchemaRef("GradeRow")},
				"semesters": {Type: "array", Items: &openapi.Schema{Type: "object"}},
				"summary":   {Type: "object"},
			},
		},
		"Session": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"token":      {Type: "string"},
				"expires_at": {Type: "string", Format: "date-time"},
				"user":       openapi.SchemaRef("User"),
			},
		},
		"WorkflowState": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"stage": {
					Type: "string",
					Enum: []any{"upload", "validation", "processing", "certificate-upload"},
				},
				"has_transcript":  {Type: "boolean"},
				"has_analysis":    {Type: "boolean"},
				"grade_row_count": {Type: "integer"},
			},
		},
		"Job": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":       {Type: "string", Format: "uuid"},
				"title":    {Type: "string"},
				"company":  {Type: "string"},
				"location": {Type: "string"},
				"source":   {Type: "string"},
				"url":      {Type: "string"},
			},
		},
	})

	email := openapi.QueryParam("email", "string", "Account email address", true)

	spec.Paths["/auth/register"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Register a new account",
			Tags:        []string{"auth"},
			RequestBody: openapi.RequestBodyJSON("User", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created session", "Session"),
				400: openapi.ResponseRef("BadRequest"),
				409: openapi.ResponseRef("Conflict"),
			},
		},
	}
	spec.Paths["/auth/login"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Authenticate with email and password",
			Tags:        []string{"auth"},
			RequestBody: openapi.RequestBodyJSON("User", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Active session", "Session"),
				401: openapi.ResponseRef("Unauthorized"),
			},
		},
	}
	spec.Paths["/users"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List user profiles",
			Tags:    []string{"users"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("page", "integer", "Page number", false),
				openapi.QueryParam("pageSize", "integer", "Items per page", false),
				openapi.QueryParam("search", "string", "Search across name and email", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of users", "User"),
			},
		},
	}
	spec.Paths["/users/upload-tor"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary: "Upload a transcript of records",
			Tags:    []string{"users"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Transcript reference", "User"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Remove the uploaded transcript",
			Tags:       []string{"users"},
			Parameters: []*openapi.Parameter{email},
			Responses: map[int]*openapi.Response{
				204: {Description: "Transcript removed"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
	spec.Paths["/users/extract-grades"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary: "Run OCR grade extraction against the stored transcript",
			Tags:    []string{"users"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Normalized grade table", "GradeTable"),
				404: openapi.ResponseRef("NotFound"),
				502: {Description: "Processing engine failure"},
			},
		},
	}
	spec.Paths["/users/grades"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Fetch the reconciled grade table",
			Tags:       []string{"users"},
			Parameters: []*openapi.Parameter{email},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Grade table", "GradeTable"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
	spec.Paths["/workflow"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Derive the current workflow stage for an account",
			Tags:       []string{"workflow"},
			Parameters: []*openapi.Parameter{email},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Workflow state", "WorkflowState"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
	spec.Paths["/jobs"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List job postings",
			Tags:    []string{"jobs"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("limit", "integer", "Maximum results", false),
				openapi.QueryParam("offset", "integer", "Results to skip", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of jobs", "Job"),
			},
		},
	}
	spec.Paths["/analysis/dev-compute-archetype"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary: "Compute and persist RIASEC archetype percentages",
			Tags:    []string{"analysis"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Updated profile", "User"),
				502: {Description: "Processing engine failure"},
			},
		},
	}
	spec.Paths["/dossier/export"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Export the academic dossier as an Excel workbook",
			Tags:       []string{"dossier"},
			Parameters: []*openapi.Parameter{email},
			Responses: map[int]*openapi.Response{
				200: {Description: "Workbook attachment"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	data, err := spec.MarshalIndent()
	if err != nil {
		return nil, err
	}
	return openapi.ServeSpec(data), nil
}
