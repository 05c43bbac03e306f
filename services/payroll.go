package services

import "math"

const (
	// DefaultWorkingDays applies when a monthly record is created without totalWorkingDays.
	DefaultWorkingDays = 22

	halfDayFactor      = 0.5
	hoursPerDay        = 8
	overtimeMultiplier = 1.5
)

// SalaryInput is the attendance and compensation data of one pay period.
// Zero values stand in for absent fields.
type SalaryInput struct {
	BasicSalary      float64
	TotalWorkingDays int
	PresentDays      int
	HalfDays         int
	OvertimeHours    float64
	Bonuses          float64
	Deductions       float64
}

type SalaryBreakdown struct {
	DailyRate        float64 `json:"daily_rate"`
	AttendanceSalary float64 `json:"attendance_salary"`
	OvertimePay      float64 `json:"overtime_pay"`
	GrossSalary      float64 `json:"gross_salary"`
	NetSalary        float64 `json:"net_salary"`
}

// CalculateSalary derives the salary breakdown for in. It never fails: a non-positive
// TotalWorkingDays is treated as 1 and negative inputs are taken as given.
// Only the net figure is floored at zero.
func CalculateSalary(in SalaryInput) SalaryBreakdown {
	workingDays := in.TotalWorkingDays
	if workingDays <= 0 {
		workingDays = 1
	}

	dailyRate := in.BasicSalary / float64(workingDays)
	attendance := float64(in.PresentDays)*dailyRate + float64(in.HalfDays)*dailyRate*halfDayFactor
	overtime := in.OvertimeHours * (dailyRate / hoursPerDay) * overtimeMultiplier
	gross := attendance + overtime + in.Bonuses

	return SalaryBreakdown{
		DailyRate:        dailyRate,
		AttendanceSalary: attendance,
		OvertimePay:      overtime,
		GrossSalary:      gross,
		NetSalary:        math.Max(0, gross-in.Deductions),
	}
}

func CalculateNetSalary(in SalaryInput) float64 {
	return CalculateSalary(in).NetSalary
}

// AbsentDays is what remains of the period after present, half and leave days.
func AbsentDays(totalWorkingDays, presentDays, halfDays, leaveDays int) int {
	return totalWorkingDays - presentDays - halfDays - leaveDays
}
