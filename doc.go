/*
	Project: Coursely - online course catalog & learning platform.
	Apps:
		- apps/api: HTTP JSON API (catalog, enrollments, simulated KHQR checkout, contact form)
		- apps/admin: catalog CLI
*/
package coursely
