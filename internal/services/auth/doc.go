/*
Package auth provides the identity layer of the application, built on the
repository contract so the same protocol runs against either storage backend.

Sign-up is identity-first: the auth record is the only step that can abort
registration, while profile and balance provisioning are best-effort. Sign-in
returns a uniform invalid-credentials error for any mismatch. Admin
credentials are managed as an idempotent upsert supporting rotation.

Usage:

	svc := auth.NewService(backends, log)

	result, err := svc.SignUp(auth.SignUpInput{
	    Email:    "user@example.com",
	    Password: "correct horse battery staple",
	})

	session, err := svc.SignIn(email, password)

	admin, err := svc.CreateAdminUser("ops", "ops@example.com", password, models.AdminRoleSuperAdmin)

Availability checks:

	free := svc.ValidateUsername("newname", "")
	free := svc.ValidateEmail("user@example.com", existingID)
*/
package auth
