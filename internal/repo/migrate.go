package repo

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const textSize = 2147483647

var (
	// ClinicsColumns holds the columns for the "clinics" table.
	ClinicsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "name", Type: field.TypeString, Size: 255},
		{Name: "address", Type: field.TypeString, Size: 512},
		{Name: "phone", Type: field.TypeString, Size: 32},
		{Name: "email", Type: field.TypeString, Size: 255},
		{Name: "membership", Type: field.TypeEnum, Enums: []string{"monthly", "annual"}},
		{Name: "expires_at", Type: field.TypeTime, Nullable: true},
		{Name: "active", Type: field.TypeBool},
		{Name: "trial", Type: field.TypeBool},
		{Name: "created_at", Type: field.TypeTime},
	}
	// ClinicsTable holds the schema information for the "clinics" table.
	ClinicsTable = &schema.Table{
		Name:       "clinics",
		Columns:    ClinicsColumns,
		PrimaryKey: []*schema.Column{ClinicsColumns[0]},
	}

	// ProfessionalsColumns holds the columns for the "professionals" table.
	ProfessionalsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "first_name", Type: field.TypeString, Size: 100},
		{Name: "last_name", Type: field.TypeString, Size: 100},
		{Name: "specialty", Type: field.TypeString, Size: 100},
		{Name: "license_number", Type: field.TypeString, Size: 64},
		{Name: "phone", Type: field.TypeString, Size: 32},
		{Name: "email", Type: field.TypeString, Size: 255},
		{Name: "active", Type: field.TypeBool},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
		{Name: "clinic_id", Type: field.TypeUUID},
	}
	// ProfessionalsTable holds the schema information for the "professionals" table.
	ProfessionalsTable = &schema.Table{
		Name:       "professionals",
		Columns:    ProfessionalsColumns,
		PrimaryKey: []*schema.Column{ProfessionalsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "professionals_clinics_professionals",
				Columns:    []*schema.Column{ProfessionalsColumns[10]},
				RefColumns: []*schema.Column{ClinicsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "professional_clinic_id_first_name",
				Unique:  false,
				Columns: []*schema.Column{ProfessionalsColumns[10], ProfessionalsColumns[1]},
			},
		},
	}

	// PatientsColumns holds the columns for the "patients" table.
	PatientsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "first_name", Type: field.TypeString, Size: 100},
		{Name: "last_name", Type: field.TypeString, Size: 100},
		{Name: "birth_date", Type: field.TypeTime, Nullable: true},
		{Name: "phone", Type: field.TypeString, Size: 32},
		{Name: "email", Type: field.TypeString, Size: 255},
		{Name: "address", Type: field.TypeString, Size: 512},
		{Name: "guardian_id", Type: field.TypeUUID, Nullable: true},
		{Name: "debt_balance", Type: field.TypeInt64},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
		{Name: "clinic_id", Type: field.TypeUUID},
	}
	// PatientsTable holds the schema information for the "patients" table.
	PatientsTable = &schema.Table{
		Name:       "patients",
		Columns:    PatientsColumns,
		PrimaryKey: []*schema.Column{PatientsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "patients_clinics_patients",
				Columns:    []*schema.Column{PatientsColumns[11]},
				RefColumns: []*schema.Column{ClinicsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "patient_clinic_id_first_name",
				Unique:  false,
				Columns: []*schema.Column{PatientsColumns[11], PatientsColumns[1]},
			},
		},
	}

	// AppointmentsColumns holds the columns for the "appointments" table.
	AppointmentsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "scheduled_at", Type: field.TypeTime},
		{Name: "status", Type: field.TypeEnum, Enums: []string{"scheduled", "completed", "cancelled"}},
		{Name: "reason", Type: field.TypeString, Size: 512},
		{Name: "notes", Type: field.TypeString, Nullable: true, Size: textSize},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
		{Name: "clinic_id", Type: field.TypeUUID},
		{Name: "patient_id", Type: field.TypeUUID},
		{Name: "professional_id", Type: field.TypeUUID},
	}
	// AppointmentsTable holds the schema information for the "appointments" table.
	AppointmentsTable = &schema.Table{
		Name:       "appointments",
		Columns:    AppointmentsColumns,
		PrimaryKey: []*schema.Column{AppointmentsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "appointments_clinics_appointments",
				Columns:    []*schema.Column{AppointmentsColumns[7]},
				RefColumns: []*schema.Column{ClinicsColumns[0]},
				OnDelete:   schema.NoAction,
			},
			{
				Symbol:     "appointments_patients_appointments",
				Columns:    []*schema.Column{AppointmentsColumns[8]},
				RefColumns: []*schema.Column{PatientsColumns[0]},
				OnDelete:   schema.NoAction,
			},
			{
				Symbol:     "appointments_professionals_appointments",
				Columns:    []*schema.Column{AppointmentsColumns[9]},
				RefColumns: []*schema.Column{ProfessionalsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "appointment_clinic_id_scheduled_at",
				Unique:  false,
				Columns: []*schema.Column{AppointmentsColumns[7], AppointmentsColumns[1]},
			},
			{
				Name:    "appointment_clinic_id_status",
				Unique:  false,
				Columns: []*schema.Column{AppointmentsColumns[7], AppointmentsColumns[2]},
			},
		},
	}

	// TreatmentsColumns holds the columns for the "treatments" table.
	TreatmentsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "description", Type: field.TypeString, Size: textSize},
		{Name: "cost", Type: field.TypeInt64},
		{Name: "paid", Type: field.TypeBool},
		{Name: "performed_at", Type: field.TypeTime},
		{Name: "clinic_id", Type: field.TypeUUID},
		{Name: "patient_id", Type: field.TypeUUID},
		{Name: "professional_id", Type: field.TypeUUID},
		{Name: "appointment_id", Type: field.TypeUUID, Nullable: true},
	}
	// TreatmentsTable holds the schema information for the "treatments" table.
	TreatmentsTable = &schema.Table{
		Name:       "treatments",
		Columns:    TreatmentsColumns,
		PrimaryKey: []*schema.Column{TreatmentsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "treatments_clinics_treatments",
				Columns:    []*schema.Column{TreatmentsColumns[5]},
				RefColumns: []*schema.Column{ClinicsColumns[0]},
				OnDelete:   schema.NoAction,
			},
			{
				Symbol:     "treatments_patients_treatments",
				Columns:    []*schema.Column{TreatmentsColumns[6]},
				RefColumns: []*schema.Column{PatientsColumns[0]},
				OnDelete:   schema.NoAction,
			},
			{
				Symbol:     "treatments_professionals_treatments",
				Columns:    []*schema.Column{TreatmentsColumns[7]},
				RefColumns: []*schema.Column{ProfessionalsColumns[0]},
				OnDelete:   schema.NoAction,
			},
			{
				Symbol:     "treatments_appointments_treatments",
				Columns:    []*schema.Column{TreatmentsColumns[8]},
				RefColumns: []*schema.Column{AppointmentsColumns[0]},
				OnDelete:   schema.SetNull,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "treatment_patient_id_performed_at",
				Unique:  false,
				Columns: []*schema.Column{TreatmentsColumns[6], TreatmentsColumns[4]},
			},
			{
				Name:    "treatment_clinic_id_paid_performed_at",
				Unique:  false,
				Columns: []*schema.Column{TreatmentsColumns[5], TreatmentsColumns[3], TreatmentsColumns[4]},
			},
		},
	}

	// ToothRecordsColumns holds the columns for the "tooth_records" table.
	ToothRecordsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "tooth_number", Type: field.TypeInt},
		{Name: "condition", Type: field.TypeString, Size: 32},
		{Name: "treatment", Type: field.TypeString, Nullable: true, Size: textSize},
		{Name: "updated_at", Type: field.TypeTime},
		{Name: "patient_id", Type: field.TypeUUID},
	}
	// ToothRecordsTable holds the schema information for the "tooth_records" table.
	ToothRecordsTable = &schema.Table{
		Name:       "tooth_records",
		Columns:    ToothRecordsColumns,
		PrimaryKey: []*schema.Column{ToothRecordsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "tooth_records_patients_tooth_records",
				Columns:    []*schema.Column{ToothRecordsColumns[5]},
				RefColumns: []*schema.Column{PatientsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "toothrecord_patient_id_tooth_number",
				Unique:  true,
				Columns: []*schema.Column{ToothRecordsColumns[5], ToothRecordsColumns[1]},
			},
		},
	}

	// StudiesColumns holds the columns for the "studies" table.
	StudiesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "kind", Type: field.TypeEnum, Enums: []string{"radiograph", "study"}},
		{Name: "file_key", Type: field.TypeString, Size: 512},
		{Name: "file_name", Type: field.TypeString, Size: 255},
		{Name: "content_type", Type: field.TypeString, Size: 128},
		{Name: "description", Type: field.TypeString, Size: textSize},
		{Name: "uploaded_at", Type: field.TypeTime},
		{Name: "patient_id", Type: field.TypeUUID},
	}
	// StudiesTable holds the schema information for the "studies" table.
	StudiesTable = &schema.Table{
		Name:       "studies",
		Columns:    StudiesColumns,
		PrimaryKey: []*schema.Column{StudiesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "studies_patients_studies",
				Columns:    []*schema.Column{StudiesColumns[7]},
				RefColumns: []*schema.Column{PatientsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "study_patient_id_uploaded_at",
				Unique:  false,
				Columns: []*schema.Column{StudiesColumns[7], StudiesColumns[6]},
			},
		},
	}

	// PrescriptionsColumns holds the columns for the "prescriptions" table.
	PrescriptionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "medications", Type: field.TypeString, Size: textSize},
		{Name: "instructions", Type: field.TypeString, Size: textSize},
		{Name: "verification_code", Type: field.TypeString, Unique: true, Size: 32},
		{Name: "issued_at", Type: field.TypeTime},
		{Name: "patient_id", Type: field.TypeUUID},
		{Name: "professional_id", Type: field.TypeUUID},
		{Name: "appointment_id", Type: field.TypeUUID, Nullable: true},
	}
	// PrescriptionsTable holds the schema information for the "prescriptions" table.
	PrescriptionsTable = &schema.Table{
		Name:       "prescriptions",
		Columns:    PrescriptionsColumns,
		PrimaryKey: []*schema.Column{PrescriptionsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "prescriptions_patients_prescriptions",
				Columns:    []*schema.Column{PrescriptionsColumns[5]},
				RefColumns: []*schema.Column{PatientsColumns[0]},
				OnDelete:   schema.NoAction,
			},
			{
				Symbol:     "prescriptions_professionals_prescriptions",
				Columns:    []*schema.Column{PrescriptionsColumns[6]},
				RefColumns: []*schema.Column{ProfessionalsColumns[0]},
				OnDelete:   schema.NoAction,
			},
			{
				Symbol:     "prescriptions_appointments_prescriptions",
				Columns:    []*schema.Column{PrescriptionsColumns[7]},
				RefColumns: []*schema.Column{AppointmentsColumns[0]},
				OnDelete:   schema.SetNull,
			},
		},
	}

	// MedicalRecordsColumns holds the columns for the "medical_records" table.
	MedicalRecordsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "allergies", Type: field.TypeString, Size: textSize},
		{Name: "medications", Type: field.TypeString, Size: textSize},
		{Name: "conditions", Type: field.TypeString, Size: textSize},
		{Name: "notes", Type: field.TypeString, Size: textSize},
		{Name: "updated_at", Type: field.TypeTime},
		{Name: "patient_id", Type: field.TypeUUID, Unique: true},
	}
	// MedicalRecordsTable holds the schema information for the "medical_records" table.
	MedicalRecordsTable = &schema.Table{
		Name:       "medical_records",
		Columns:    MedicalRecordsColumns,
		PrimaryKey: []*schema.Column{MedicalRecordsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "medical_records_patients_medical_record",
				Columns:    []*schema.Column{MedicalRecordsColumns[6]},
				RefColumns: []*schema.Column{PatientsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
	}

	// Tables holds all the tables in the schema, in dependency order.
	Tables = []*schema.Table{
		ClinicsTable,
		ProfessionalsTable,
		PatientsTable,
		AppointmentsTable,
		TreatmentsTable,
		ToothRecordsTable,
		StudiesTable,
		PrescriptionsTable,
		MedicalRecordsTable,
	}
)

func init() {
	ProfessionalsTable.ForeignKeys[0].RefTable = ClinicsTable
	PatientsTable.ForeignKeys[0].RefTable = ClinicsTable
	AppointmentsTable.ForeignKeys[0].RefTable = ClinicsTable
	AppointmentsTable.ForeignKeys[1].RefTable = PatientsTable
	AppointmentsTable.ForeignKeys[2].RefTable = ProfessionalsTable
	TreatmentsTable.ForeignKeys[0].RefTable = ClinicsTable
	TreatmentsTable.ForeignKeys[1].RefTable = PatientsTable
	TreatmentsTable.ForeignKeys[2].RefTable = ProfessionalsTable
	TreatmentsTable.ForeignKeys[3].RefTable = AppointmentsTable
	ToothRecordsTable.ForeignKeys[0].RefTable = PatientsTable
	StudiesTable.ForeignKeys[0].RefTable = PatientsTable
	PrescriptionsTable.ForeignKeys[0].RefTable = PatientsTable
	PrescriptionsTable.ForeignKeys[1].RefTable = ProfessionalsTable
	PrescriptionsTable.ForeignKeys[2].RefTable = AppointmentsTable
	MedicalRecordsTable.ForeignKeys[0].RefTable = PatientsTable
}

// Migrate creates or updates every table, column and index of the schema.
func (c *Client) Migrate(ctx context.Context, opts ...schema.MigrateOption) error {
	m, err := schema.NewMigrate(c.drv, opts...)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
