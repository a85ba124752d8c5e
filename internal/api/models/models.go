package models

import "time"

// Health check models
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Service status"`
	Message string `json:"message" example:"API is healthy" doc:"Status message"`
}

type HealthResponse struct {
	Body HealthData
}

// Version models
type VersionData struct {
	Version   string `json:"version" example:"dev" doc:"Application version"`
	GitCommit string `json:"git_commit" example:"abc1234" doc:"Git commit SHA"`
	BuildDate string `json:"build_date" example:"2024-12-15 14:30" doc:"Build timestamp"`
	BuildID   string `json:"build_id" example:"a1b2c3d4" doc:"Unique build identifier"`
	GoVersion string `json:"go_version" example:"go1.24.0" doc:"Go compiler version"`
	Compiler  string `json:"compiler" example:"gc" doc:"Compiler used"`
	Platform  string `json:"platform" example:"linux/amd64" doc:"Platform"`
}

type VersionResponse struct {
	Body VersionData
}

// Component models
type ComponentData struct {
	Name        string `json:"name" example:"COMPONENT_FSAL" doc:"Canonical component name"`
	Display     string `json:"display" example:"FSAL" doc:"Label printed in records"`
	Level       string `json:"level" example:"NIV_EVENT" doc:"Current threshold"`
	LevelValue  int    `json:"level_value" example:"5" doc:"Numeric threshold"`
	Destination string `json:"destination" example:"SYSLOG" doc:"Where records go: SYSLOG, STDOUT, STDERR, TEST, BUFFER or a file path"`
	Pinned      bool   `json:"pinned" example:"false" doc:"Level set from the environment and locked"`
}

type ComponentListData struct {
	Components []ComponentData `json:"components" doc:"Every component in table order"`
	Count      int             `json:"count" example:"50" doc:"Number of components"`
}

type ComponentListResponse struct {
	Body ComponentListData
}

type ComponentResponse struct {
	Body ComponentData
}

type ComponentPath struct {
	Name string `path:"name" example:"FSAL" doc:"Component name, with or without the COMPONENT_ prefix"`
}

type SetLevelRequest struct {
	ComponentPath
	Body struct {
		Level string `json:"level" minLength:"1" example:"NIV_DEBUG" doc:"Level name (NIV_DEBUG or DEBUG)"`
	}
}

type SetDestinationRequest struct {
	ComponentPath
	Body struct {
		Destination string `json:"destination" minLength:"1" example:"STDERR" doc:"SYSLOG, STDOUT, STDERR, TEST or an absolute file path"`
	}
}

type SetDefaultDestinationRequest struct {
	Body struct {
		Destination string `json:"destination" minLength:"1" example:"/var/log/complog.log" doc:"SYSLOG, STDOUT, STDERR, TEST or an absolute file path"`
	}
}

type DefaultDestinationData struct {
	Destination string `json:"destination" example:"SYSLOG" doc:"Destination now used by every component"`
}

type DefaultDestinationResponse struct {
	Body DefaultDestinationData
}

// Level models
type LevelData struct {
	Value    int    `json:"value" example:"4" doc:"Numeric level"`
	Name     string `json:"name" example:"NIV_WARN" doc:"Symbolic name"`
	Short    string `json:"short" example:"WARN" doc:"Short alias"`
	Priority int    `json:"priority" example:"4" doc:"Syslog priority"`
}

type LevelListResponse struct {
	Body struct {
		Levels []LevelData `json:"levels" doc:"Level table, most severe first"`
	}
}

// Error rendering models
type ErrorLineRequest struct {
	Family int `path:"family" minimum:"0" example:"0" doc:"Error family number"`
	Code   int `path:"code" example:"7" doc:"Error code within the family"`
	Status int `query:"status" example:"13" doc:"OS error number, 0 for none"`
	Line   int `query:"line" example:"120" doc:"Source line reported in the message"`
}

type ErrorLineData struct {
	Family     int    `json:"family" example:"0" doc:"Error family number"`
	FamilyName string `json:"family_name" example:"Errors Systeme UNIX" doc:"Error family name"`
	Label      string `json:"label" example:"ERR_FILE_LOG" doc:"Error code label"`
	Known      bool   `json:"known" example:"true" doc:"Whether the family holds the code"`
	Text       string `json:"text" doc:"Rendered error line"`
}

type ErrorLineResponse struct {
	Body ErrorLineData
}

// History models
type HistoryRequest struct {
	Component string `query:"component" example:"FSAL" doc:"Only records of this component"`
	Limit     int    `query:"limit" minimum:"0" default:"100" example:"50" doc:"Most recent records to return, 0 for all"`
}

type HistoryEntry struct {
	Seq       uint64    `json:"seq" example:"42" doc:"Record sequence number"`
	Timestamp time.Time `json:"timestamp" doc:"When the record was dispatched"`
	Component string    `json:"component" example:"COMPONENT_FSAL" doc:"Source component"`
	Level     string    `json:"level" example:"NIV_WARN" doc:"Record level"`
	Thread    string    `json:"thread" example:"worker-1" doc:"Thread name"`
	Function  string    `json:"function,omitempty" example:"main.run" doc:"Calling function"`
	Message   string    `json:"message" doc:"Rendered message body"`
}

type HistoryResponse struct {
	Body struct {
		Entries []HistoryEntry `json:"entries" doc:"Records, oldest first"`
		Count   int            `json:"count" example:"2" doc:"Number of records returned"`
	}
}

// Emit models
type EmitRequest struct {
	Body struct {
		Component string `json:"component" minLength:"1" example:"MAIN" doc:"Target component"`
		Level     string `json:"level" minLength:"1" example:"NIV_EVENT" doc:"Record level"`
		Function  string `json:"function,omitempty" example:"deploy" doc:"Function name shown in the prefix"`
		Thread    string `json:"thread,omitempty" example:"ops" doc:"Thread name for this record"`
		Message   string `json:"message" example:"maintenance window opened" doc:"Record body"`
	}
}

type EmitResponse struct {
	Body struct {
		Dispatched bool `json:"dispatched" example:"true" doc:"False when the component threshold filtered the record out"`
	}
}
