package server

import (
	"github.com/gofiber/fiber/v2"
)

// SendConnectionRequest handles POST /api/connections/request/:userId
func (s *Server) SendConnectionRequest(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	req, err := s.connectionService.SendRequest(c.Context(), currentUserID(c), targetID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

// AcceptConnectionRequest handles PUT /api/connections/accept/:requestId
func (s *Server) AcceptConnectionRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	req, err := s.connectionService.AcceptRequest(c.Context(), currentUserID(c), requestID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(req)
}

// RejectConnectionRequest handles PUT /api/connections/reject/:requestId
func (s *Server) RejectConnectionRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	req, err := s.connectionService.RejectRequest(c.Context(), currentUserID(c), requestID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(req)
}

// GetConnectionRequests handles GET /api/connections/requests
func (s *Server) GetConnectionRequests(c *fiber.Ctx) error {
	requests, err := s.connectionService.PendingRequests(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"requests": requests})
}

// GetConnections handles GET /api/connections
func (s *Server) GetConnections(c *fiber.Ctx) error {
	connections, err := s.connectionService.Connections(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"connections": connections})
}

// GetConnectionStatus handles GET /api/connections/status/:userId
func (s *Server) GetConnectionStatus(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	status, requestID, err := s.connectionService.Status(c.Context(), currentUserID(c), targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	resp := fiber.Map{"status": status}
	if requestID != 0 {
		resp["request_id"] = requestID
	}
	return c.JSON(resp)
}

// RemoveConnection handles DELETE /api/connections/:userId
func (s *Server) RemoveConnection(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.connectionService.RemoveConnection(c.Context(), currentUserID(c), targetID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Connection removed"})
}
